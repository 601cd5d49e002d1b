package telemetry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// sensorsFile is the shape of the sensors config file
type sensorsFile struct {
	Version string         `json:"version" validate:"required"`
	Sensors []sensorConfig `json:"sensors" validate:"required,min=1,dive"`
}

type sensorConfig struct {
	SensorID string  `json:"sensor_id" validate:"required"`
	Metric   string  `json:"metric" validate:"required"`
	Unit     string  `json:"unit"`
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`
}

// LoadSensors reads and validates the sensor fleet config file
func LoadSensors(path string) ([]SensorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file sensorsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validator.New().Struct(&file); err != nil {
		return nil, fmt.Errorf("invalid sensors file %s: %w", path, err)
	}

	configs := make([]SensorConfig, 0, len(file.Sensors))
	for _, s := range file.Sensors {
		if s.MaxValue <= s.MinValue {
			return nil, fmt.Errorf("sensor %s: max_value must exceed min_value", s.SensorID)
		}
		configs = append(configs, SensorConfig{
			SensorID: s.SensorID,
			Metric:   s.Metric,
			Unit:     s.Unit,
			MinValue: s.MinValue,
			MaxValue: s.MaxValue,
		})
	}
	return configs, nil
}
