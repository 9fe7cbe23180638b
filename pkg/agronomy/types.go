// Package agronomy holds the advisory engine: deterministic rules that turn a
// field's soil readings and rotation history into an AdvisoryReport.
//
// Every exported function is pure. Nothing here touches storage, HTTP or the
// clock; callers pass the calendar month explicitly.
package agronomy

import "time"

// CropFamily is the agronomic grouping used for rotation reasoning.
type CropFamily string

const (
	FamilyLegume    CropFamily = "Legume"
	FamilyCereal    CropFamily = "Cereal"
	FamilyOilseed   CropFamily = "Oilseed"
	FamilyVegetable CropFamily = "Vegetable"
	FamilyFruit     CropFamily = "Fruit"
	FamilyFiber     CropFamily = "Fiber"
	FamilyOther     CropFamily = "Other"
)

// CropFamilies lists every family in declaration order.
var CropFamilies = []CropFamily{
	FamilyLegume, FamilyCereal, FamilyOilseed, FamilyVegetable, FamilyFruit, FamilyFiber, FamilyOther,
}

// Valid reports whether f is one of the known families.
func (f CropFamily) Valid() bool {
	for _, k := range CropFamilies {
		if f == k {
			return true
		}
	}
	return false
}

// Season is the cropping season a cycle was sown in.
type Season string

const (
	SeasonKharif    Season = "Kharif"
	SeasonRabi      Season = "Rabi"
	SeasonZaid      Season = "Zaid"
	SeasonPerennial Season = "Perennial"
	SeasonYearRound Season = "Year-round"
)

var seasons = []Season{SeasonKharif, SeasonRabi, SeasonZaid, SeasonPerennial, SeasonYearRound}

func (s Season) Valid() bool {
	for _, k := range seasons {
		if s == k {
			return true
		}
	}
	return false
}

// SeasonForMonth maps a calendar month to the sowing window it falls in.
// Months outside 1..12 map to the empty season.
func SeasonForMonth(month int) Season {
	switch {
	case month >= 6 && month <= 9:
		return SeasonKharif
	case month >= 10 && month <= 12, month >= 1 && month <= 3:
		return SeasonRabi
	case month == 4 || month == 5:
		return SeasonZaid
	}
	return ""
}

// NutrientReading is one soil test. NPK in kg/ha, organic matter in % by mass.
type NutrientReading struct {
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	PH            float64 `json:"pH"`
	OrganicMatter float64 `json:"organicMatter"`
}

// FertilizerUse records an input applied during a cycle. Informational only.
type FertilizerUse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CropCycle is one season of one crop on a field. Cycles are immutable once
// appended to a field's history.
type CropCycle struct {
	CropName         string           `json:"cropName"`
	CropFamily       CropFamily       `json:"cropFamily"`
	Season           Season           `json:"season"`
	Year             int              `json:"year"`
	PlantedDate      time.Time        `json:"plantedDate"`
	HarvestDate      *time.Time       `json:"harvestDate,omitempty"`
	Yield            *float64         `json:"yield"`
	YieldUnit        string           `json:"yieldUnit"`
	SoilHealthBefore *NutrientReading `json:"soilHealthBefore"`
	SoilHealthAfter  *NutrientReading `json:"soilHealthAfter"`
	FertilizersUsed  []FertilizerUse  `json:"fertilizersUsed,omitempty"`
	Notes            string           `json:"notes"`
}

// Field is the snapshot the engine reasons about. RotationHistory is in
// chronological (insertion) order.
type Field struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Area              float64          `json:"area"`
	CurrentSoilHealth *NutrientReading `json:"currentSoilHealth"`
	RotationHistory   []CropCycle      `json:"rotationHistory"`
}

// Severity grades a rotation pattern.
type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityWarning   Severity = "warning"
	SeverityCritical  Severity = "critical"
	SeverityGood      Severity = "good"
	SeverityExcellent Severity = "excellent"
	SeverityFair      Severity = "fair"
)

const (
	PatternInsufficientData = "Insufficient Data"
	PatternMonoculture      = "Monoculture"
	PatternLegumeCereal     = "Legume-Cereal Rotation"
	PatternMultiCrop        = "Multi-crop Rotation"
	PatternTwoCrop          = "Two-crop Rotation"
)

// RotationPattern is the rotation-health classification of a history.
type RotationPattern struct {
	Pattern        string   `json:"pattern"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	IntervalAdvice string   `json:"intervalAdvice"`
}

// Trend is the direction of soil fertility across recent cycles.
type Trend string

const (
	TrendImproving Trend = "Improving"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
	TrendUnknown   Trend = "Unknown"
)

// SoilTrend is the TrendProjector output. Series holds the after-cycle
// nitrogen values for sparklines; Forecast extends the average delta forward.
type SoilTrend struct {
	Trend         Trend     `json:"trend"`
	PercentChange int       `json:"percentChange"`
	AverageDelta  float64   `json:"averageDelta"`
	Series        []float64 `json:"series"`
	Forecast      []float64 `json:"forecast"`
}

// WaterNeed is the irrigation demand class of a crop.
type WaterNeed string

const (
	WaterLow    WaterNeed = "Low"
	WaterMedium WaterNeed = "Medium"
	WaterHigh   WaterNeed = "High"
)

// ScoredCrop is one ranked next-crop candidate.
type ScoredCrop struct {
	Name         string    `json:"name"`
	Score        int       `json:"score"`
	YieldRange   string    `json:"yieldRange"`
	PriceRange   string    `json:"priceRange"`
	WaterNeed    WaterNeed `json:"waterNeed"`
	DurationDays string    `json:"durationDays"`
}

// CropSuggestions is the CropSuggestionEngine output.
type CropSuggestions struct {
	Suggested []ScoredCrop `json:"suggested"`
	Reason    string       `json:"reason"`
	Season    Season       `json:"season,omitempty"`
}

// Priority of a remediation item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Dosage is a computed quantity scaled by field area and deficit.
type Dosage struct {
	Material string  `json:"material"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ApplicationRate is a flat per-hectare range that does not depend on the
// deficit size.
type ApplicationRate struct {
	Material string  `json:"material"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Unit     string  `json:"unit"`
}

// RecommendationItem is one prioritized remediation action.
type RecommendationItem struct {
	Kind         string            `json:"kind"`
	Priority     Priority          `json:"priority"`
	PriorityRank int               `json:"priorityRank"`
	Icon         string            `json:"icon"`
	Title        string            `json:"title"`
	ActionText   string            `json:"actionText"`
	GuideTitle   string            `json:"guideTitle"`
	GuideSteps   []string          `json:"guideSteps"`
	Dosage       *Dosage           `json:"dosage,omitempty"`
	Rates        []ApplicationRate `json:"rates,omitempty"`
}

// BenchmarkStatus grades a yield against its benchmark.
type BenchmarkStatus string

const (
	BenchmarkExcellent BenchmarkStatus = "excellent"
	BenchmarkGood      BenchmarkStatus = "good"
	BenchmarkBelow     BenchmarkStatus = "below"
)

// BenchmarkResult compares one reported yield against the crop average.
type BenchmarkResult struct {
	Avg        float64         `json:"avg"`
	Good       float64         `json:"good"`
	Percentage int             `json:"percentage"`
	Status     BenchmarkStatus `json:"status"`
}

// YieldComparison ties a benchmark result to the history entry it grades.
type YieldComparison struct {
	CycleIndex int              `json:"cycleIndex"`
	CropName   string           `json:"cropName"`
	Year       int              `json:"year"`
	Result     *BenchmarkResult `json:"result"`
}

// NutrientStatus is a qualitative label for one reading.
type NutrientStatus struct {
	Nutrient     Nutrient `json:"nutrient"`
	Value        *float64 `json:"value"`
	Label        string   `json:"label"`
	OptimalRange string   `json:"optimalRange"`
}

// Statistics summarizes a rotation history.
type Statistics struct {
	TotalCropsGrown int          `json:"totalCropsGrown"`
	CropFamilies    []CropFamily `json:"cropFamilies"`
	YearsTracked    int          `json:"yearsTracked"`
	AverageYield    *float64     `json:"averageYield"`
	LastCrop        string       `json:"lastCrop,omitempty"`
}

// AdvisoryReport is the composite engine output for one field snapshot. It is
// derived and disposable; nothing in it aliases the input Field.
type AdvisoryReport struct {
	FieldID          string               `json:"fieldId,omitempty"`
	FieldName        string               `json:"fieldName,omitempty"`
	Month            int                  `json:"month"`
	ReferenceVersion string               `json:"referenceVersion"`
	RotationPattern  RotationPattern      `json:"rotationPattern"`
	Trend            SoilTrend            `json:"trend"`
	Suggestions      CropSuggestions      `json:"suggestions"`
	Actions          []RecommendationItem `json:"actions"`
	YieldComparisons []YieldComparison    `json:"yieldComparisons"`
	NutrientStatus   []NutrientStatus     `json:"nutrientStatus"`
	Statistics       Statistics           `json:"statistics"`
}
