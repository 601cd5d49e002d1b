package telemetry

import (
	"math"
	"sort"

	"github.com/farmfit/farmfit/internal/domain"
)

// computeStats summarizes a batch of readings. Confidence is the mean of
// the per-reading confidences reported by the sensor.
func computeStats(readings []domain.SensorReading) domain.SensorStats {
	n := len(readings)
	if n == 0 {
		return domain.SensorStats{}
	}

	values := make([]float64, n)
	var sum, confSum float64
	min, max := readings[0].Value, readings[0].Value
	for i, r := range readings {
		values[i] = r.Value
		sum += r.Value
		confSum += r.Confidence
		if r.Value < min {
			min = r.Value
		}
		if r.Value > max {
			max = r.Value
		}
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return domain.SensorStats{
		Mean:       mean,
		StdDev:     math.Sqrt(variance),
		Min:        min,
		Max:        max,
		Median:     median,
		Count:      n,
		Confidence: confSum / float64(n),
	}
}

// Trend detection tuning. A trend must explain enough of the variance and
// move fast enough relative to the value range to count as directional.
const (
	trendMinRSquared = 0.3
	trendMinStrength = 0.1
)

// computeTrend fits a least-squares line through the readings (by sample
// index) and classifies the direction.
func computeTrend(readings []domain.SensorReading) domain.TrendAnalysis {
	n := len(readings)
	if n < 2 {
		return domain.TrendAnalysis{Trend: domain.TrendStable}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, r := range readings {
		x := float64(i)
		sumX += x
		sumY += r.Value
		sumXY += x * r.Value
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return domain.TrendAnalysis{Trend: domain.TrendStable}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	// r² against the mean model
	meanY := sumY / fn
	var ssTot, ssRes float64
	valueMin, valueMax := readings[0].Value, readings[0].Value
	for i, r := range readings {
		predicted := intercept + slope*float64(i)
		ssRes += (r.Value - predicted) * (r.Value - predicted)
		ssTot += (r.Value - meanY) * (r.Value - meanY)
		if r.Value < valueMin {
			valueMin = r.Value
		}
		if r.Value > valueMax {
			valueMax = r.Value
		}
	}

	rSquared := 1.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	// Strength: total movement of the fitted line relative to the value range
	strength := 1.0
	if valueRange := valueMax - valueMin; valueRange > 0 {
		strength = math.Abs(slope) * (fn - 1) / valueRange
		if strength > 1 {
			strength = 1
		}
	} else {
		strength = 0
	}

	trend := domain.TrendStable
	if rSquared >= trendMinRSquared && strength >= trendMinStrength {
		if slope > 0 {
			trend = domain.TrendIncreasing
		} else if slope < 0 {
			trend = domain.TrendDecreasing
		}
	}

	return domain.TrendAnalysis{
		Trend:         trend,
		TrendStrength: strength,
		Slope:         slope,
		RSquared:      rSquared,
	}
}
