package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/weather"
)

// WeatherReport bundles current conditions with any advisory alerts the
// conditions trigger.
type WeatherReport struct {
	Current *domain.CurrentWeather `json:"current"`
	Alerts  []domain.WeatherAlert  `json:"alerts"`
}

// WeatherHandler handles weather lookups
type WeatherHandler struct {
	client weather.Client
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(client weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// HandleCurrent returns current conditions for a location
// @Summary Get current weather
// @Tags weather
// @Produce json
// @Param location query string true "Location name"
// @Success 200 {object} WeatherReport
// @Failure 503 {object} ErrorResponse
// @Router /weather/current [get]
func (h *WeatherHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	location, ok := GetQueryParam(r, w, "location")
	if !ok {
		return
	}

	current, err := h.client.Current(r.Context(), location)
	if err != nil {
		respondServiceError(w, r, "Get current weather", err)
		return
	}

	report := WeatherReport{
		Current: current,
		Alerts:  notification.EvaluateWeather(*current),
	}
	respondJSON(w, http.StatusOK, report)
}
