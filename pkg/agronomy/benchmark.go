package agronomy

import (
	"math"
	"strings"
)

// BenchmarkUnit is the only yield unit the benchmark table is expressed in.
const BenchmarkUnit = "t/ha"

// CompareYield grades a reported yield. It returns nil when the unit is not
// t/ha, the value is missing or non-positive, or the crop has no benchmark.
func (e *Engine) CompareYield(cropName string, yield float64, unit string) *BenchmarkResult {
	if strings.TrimSpace(unit) != BenchmarkUnit || !finite(yield) || yield <= 0 {
		return nil
	}
	b, ok := e.ref.Benchmarks[cropName]
	if !ok || !(b.Avg > 0) {
		return nil
	}
	res := &BenchmarkResult{
		Avg:        b.Avg,
		Good:       b.Good,
		Percentage: int(math.Round(yield / b.Avg * 100)),
	}
	switch {
	case yield >= b.Good:
		res.Status = BenchmarkExcellent
	case yield >= b.Avg:
		res.Status = BenchmarkGood
	default:
		res.Status = BenchmarkBelow
	}
	return res
}

// compareHistory grades every cycle; entries without a usable yield carry a
// nil result.
func (e *Engine) compareHistory(history []CropCycle) []YieldComparison {
	out := make([]YieldComparison, 0, len(history))
	for i, c := range history {
		yc := YieldComparison{CycleIndex: i, CropName: c.CropName, Year: c.Year}
		if c.Yield != nil {
			yc.Result = e.CompareYield(c.CropName, *c.Yield, c.YieldUnit)
		}
		out = append(out, yc)
	}
	return out
}
