package agronomy

import "math"

const (
	trendWindow     = 3
	trendThreshold  = 5.0
	forecastHorizon = 3
)

// ProjectTrend derives the fertility direction from the nitrogen deltas of
// the most recent cycles that carry both before and after readings.
func ProjectTrend(history []CropCycle, current *NutrientReading) SoilTrend {
	unknown := SoilTrend{Trend: TrendUnknown, Series: []float64{}, Forecast: []float64{}}

	// Walk backwards to pick the newest qualifying cycles, then restore
	// chronological order.
	var picked []CropCycle
	for i := len(history) - 1; i >= 0 && len(picked) < trendWindow; i-- {
		c := history[i]
		if c.SoilHealthBefore == nil || c.SoilHealthAfter == nil {
			continue
		}
		if !finite(c.SoilHealthBefore.Nitrogen) || !finite(c.SoilHealthAfter.Nitrogen) {
			continue
		}
		picked = append(picked, c)
	}
	if len(picked) == 0 {
		return unknown
	}
	for i, j := 0, len(picked)-1; i < j; i, j = i+1, j-1 {
		picked[i], picked[j] = picked[j], picked[i]
	}

	var sum float64
	series := make([]float64, 0, len(picked))
	for _, c := range picked {
		sum += c.SoilHealthAfter.Nitrogen - c.SoilHealthBefore.Nitrogen
		series = append(series, math.Max(0, c.SoilHealthAfter.Nitrogen))
	}
	avg := sum / float64(len(picked))

	out := SoilTrend{
		AverageDelta: avg,
		Series:       series,
		Forecast:     []float64{},
	}
	switch {
	case avg > trendThreshold:
		out.Trend = TrendImproving
	case avg < -trendThreshold:
		out.Trend = TrendDeclining
	default:
		out.Trend = TrendStable
	}

	baseline := picked[0].SoilHealthBefore.Nitrogen
	if baseline == 0 {
		out.Trend = TrendUnknown
		return out
	}
	if current == nil || !finite(current.Nitrogen) {
		return out
	}
	out.PercentChange = int(math.Round((current.Nitrogen - baseline) / baseline * 100))

	for k := 1; k <= forecastHorizon; k++ {
		out.Forecast = append(out.Forecast, math.Max(0, current.Nitrogen+avg*float64(k)))
	}
	return out
}
