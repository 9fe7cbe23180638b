package agronomy

import "sort"

// Engine runs the analyzers against one Reference. It holds no mutable
// state, so a single Engine can serve concurrent callers.
type Engine struct {
	ref *Reference
}

// NewEngine binds the analyzers to a private copy of ref. A nil ref selects
// the built-in tables.
func NewEngine(ref *Reference) *Engine {
	if ref == nil {
		return &Engine{ref: DefaultReference()}
	}
	return &Engine{ref: ref.Clone()}
}

// ReferenceVersion reports which table set the engine reads.
func (e *Engine) ReferenceVersion() string { return e.ref.Version }

// Advise produces the full report for a field snapshot. The analyzers are
// independent of each other; the field is read, never written.
func (e *Engine) Advise(f Field, month int) AdvisoryReport {
	history := f.RotationHistory
	return AdvisoryReport{
		FieldID:          f.ID,
		FieldName:        f.Name,
		Month:            month,
		ReferenceVersion: e.ref.Version,
		RotationPattern:  AnalyzeRotation(history),
		Trend:            ProjectTrend(history, f.CurrentSoilHealth),
		Suggestions:      e.SuggestCrops(history, f.CurrentSoilHealth, month),
		Actions:          GenerateRecommendations(f),
		YieldComparisons: e.compareHistory(history),
		NutrientStatus:   e.ClassifyReading(f.CurrentSoilHealth),
		Statistics:       Summarize(history),
	}
}

// Summarize computes the history totals shown alongside the analysis.
func Summarize(history []CropCycle) Statistics {
	st := Statistics{TotalCropsGrown: len(history), CropFamilies: distinctFamilies(history)}
	if st.CropFamilies == nil {
		st.CropFamilies = []CropFamily{}
	}
	if len(history) == 0 {
		return st
	}

	years := make([]int, 0, len(history))
	var sum float64
	var n int
	for _, c := range history {
		years = append(years, c.Year)
		if c.Yield != nil && finite(*c.Yield) && *c.Yield > 0 {
			sum += *c.Yield
			n++
		}
	}
	sort.Ints(years)
	st.YearsTracked = years[len(years)-1] - years[0] + 1
	if n > 0 {
		avg := sum / float64(n)
		st.AverageYield = &avg
	}
	st.LastCrop = history[len(history)-1].CropName
	return st
}

var defaultEngine = NewEngine(nil)

// Advise runs the built-in engine.
func Advise(f Field, month int) AdvisoryReport { return defaultEngine.Advise(f, month) }

// Classify labels a reading with the built-in thresholds.
func Classify(n Nutrient, value float64) NutrientStatus { return defaultEngine.Classify(n, value) }

// SuggestCrops ranks candidates with the built-in crop catalog.
func SuggestCrops(history []CropCycle, current *NutrientReading, month int) CropSuggestions {
	return defaultEngine.SuggestCrops(history, current, month)
}

// CompareYield grades a yield against the built-in benchmarks.
func CompareYield(cropName string, yield float64, unit string) *BenchmarkResult {
	return defaultEngine.CompareYield(cropName, yield, unit)
}
