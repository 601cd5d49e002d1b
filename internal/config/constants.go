package config

import "time"

// Catalog and content config file paths, relative to the working directory.
const (
	ConfigPathTiers          = "configs/catalog/tiers.json"
	ConfigPathFarmingModules = "configs/catalog/farming_modules.json"
	ConfigPathHempVarieties  = "configs/catalog/hemp_varieties.json"
	ConfigPathHeritageCrops  = "configs/catalog/heritage_crops.json"
	ConfigPathResources      = "configs/catalog/resources.json"
	ConfigPathPlantGuides    = "configs/learning/plant_guides.json"
	ConfigPathQuestPool      = "configs/gamification/quest_pool.json"
	ConfigPathAchievements   = "configs/gamification/achievements.json"
	ConfigPathSensors        = "configs/telemetry/sensors.json"
)

// MinWeatherPollInterval guards against hammering the upstream weather API.
const MinWeatherPollInterval = time.Minute
