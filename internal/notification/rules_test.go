package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
)

func TestEvaluateWeather(t *testing.T) {
	calm := domain.CurrentWeather{
		Temperature:   20,
		Humidity:      60,
		Precipitation: 2,
		WindSpeed:     10,
	}

	t.Run("calm weather trips nothing", func(t *testing.T) {
		assert.Empty(t, EvaluateWeather(calm))
	})

	t.Run("frost is critical", func(t *testing.T) {
		w := calm
		w.Temperature = -1.5
		alerts := EvaluateWeather(w)
		require.Len(t, alerts, 1)
		assert.Equal(t, RuleKeyFrost, alerts[0].RuleKey)
		assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
		assert.Equal(t, -1.5, alerts[0].Value)
	})

	t.Run("frost boundary is inclusive", func(t *testing.T) {
		w := calm
		w.Temperature = 0
		alerts := EvaluateWeather(w)
		require.Len(t, alerts, 1)
		assert.Equal(t, RuleKeyFrost, alerts[0].RuleKey)
	})

	t.Run("heat at threshold", func(t *testing.T) {
		w := calm
		w.Temperature = 35
		alerts := EvaluateWeather(w)
		require.Len(t, alerts, 1)
		assert.Equal(t, RuleKeyHeat, alerts[0].RuleKey)
		assert.Equal(t, domain.SeverityWarning, alerts[0].Severity)
	})

	t.Run("multiple rules fire together", func(t *testing.T) {
		w := domain.CurrentWeather{
			Temperature:   38,
			Humidity:      15,
			Precipitation: 0,
			WindSpeed:     60,
		}
		alerts := EvaluateWeather(w)
		keys := make([]string, len(alerts))
		for i, a := range alerts {
			keys[i] = a.RuleKey
		}
		assert.ElementsMatch(t, []string{RuleKeyHeat, RuleKeyWind, RuleKeyLowHumidity}, keys)
	})

	t.Run("heavy rain", func(t *testing.T) {
		w := calm
		w.Precipitation = 30
		alerts := EvaluateWeather(w)
		require.Len(t, alerts, 1)
		assert.Equal(t, RuleKeyRain, alerts[0].RuleKey)
	})
}
