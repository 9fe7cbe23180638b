package agronomy

import (
	"math"
	"strings"
)

// Nutrient names a soil property the classifier understands.
type Nutrient string

const (
	Nitrogen      Nutrient = "nitrogen"
	Phosphorus    Nutrient = "phosphorus"
	Potassium     Nutrient = "potassium"
	PH            Nutrient = "pH"
	OrganicMatter Nutrient = "organicMatter"
)

// Nutrients lists the classifier's nutrients in report order.
var Nutrients = []Nutrient{Nitrogen, Phosphorus, Potassium, PH, OrganicMatter}

// Classification labels.
const (
	LabelLow      = "Low"
	LabelModerate = "Moderate"
	LabelOptimal  = "Optimal"
	LabelAcidic   = "Acidic"
	LabelAlkaline = "Alkaline"
	LabelGood     = "Good"
	LabelUnknown  = "Unknown"
)

const (
	phRange = "6.0–7.5"
	omRange = "2.0–3.5"
)

// ParseNutrient accepts the canonical names plus the N/P/K/OM shorthands.
// The second result is false for anything else.
func ParseNutrient(s string) (Nutrient, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "nitrogen":
		return Nitrogen, true
	case "p", "phosphorus":
		return Phosphorus, true
	case "k", "potassium":
		return Potassium, true
	case "ph":
		return PH, true
	case "om", "organicmatter", "organic_matter", "organic matter":
		return OrganicMatter, true
	}
	return "", false
}

// Value extracts one nutrient from a reading.
func (r NutrientReading) Value(n Nutrient) (float64, bool) {
	switch n {
	case Nitrogen:
		return r.Nitrogen, true
	case Phosphorus:
		return r.Phosphorus, true
	case Potassium:
		return r.Potassium, true
	case PH:
		return r.PH, true
	case OrganicMatter:
		return r.OrganicMatter, true
	}
	return 0, false
}

// Classify labels a single reading. It never fails: unknown nutrients and
// non-finite values come back as Unknown with an empty range.
func (e *Engine) Classify(n Nutrient, value float64) NutrientStatus {
	st := NutrientStatus{Nutrient: n, Label: LabelUnknown}
	if !finite(value) {
		return st
	}
	v := value
	st.Value = &v

	switch n {
	case Nitrogen, Phosphorus, Potassium:
		t, ok := e.ref.NPK[n]
		if !ok {
			st.Value = nil
			return st
		}
		st.OptimalRange = t.Range
		switch {
		case value < t.Low:
			st.Label = LabelLow
		case value >= t.Optimal:
			st.Label = LabelOptimal
		default:
			st.Label = LabelModerate
		}
	case PH:
		st.OptimalRange = phRange
		switch {
		case value < 5.5:
			st.Label = LabelAcidic
		case value > 8.0:
			st.Label = LabelAlkaline
		case value >= 6.0 && value <= 7.5:
			st.Label = LabelOptimal
		default:
			st.Label = LabelModerate
		}
	case OrganicMatter:
		st.OptimalRange = omRange
		switch {
		case value >= 2.5:
			st.Label = LabelGood
		case value >= 1.5:
			st.Label = LabelModerate
		default:
			st.Label = LabelLow
		}
	default:
		st.Value = nil
	}
	return st
}

// ClassifyReading labels every nutrient of r in Nutrients order. A nil
// reading yields all-Unknown statuses.
func (e *Engine) ClassifyReading(r *NutrientReading) []NutrientStatus {
	out := make([]NutrientStatus, 0, len(Nutrients))
	for _, n := range Nutrients {
		if r == nil {
			out = append(out, NutrientStatus{Nutrient: n, Label: LabelUnknown})
			continue
		}
		v, _ := r.Value(n)
		out = append(out, e.Classify(n, v))
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
