package agronomy

import "fmt"

const maxSuggestions = 6

type candidate struct {
	name  string
	score int
}

var (
	starterCrops = []candidate{{"Rice", 90}, {"Wheat", 85}, {"Cotton", 80}, {"Maize", 88}}
	nitrogenFixers = []candidate{
		{"Chickpea", 95}, {"Pigeon Pea", 92}, {"Lentil", 90},
		{"Green Gram", 88}, {"Soybean", 85}, {"Groundnut", 87},
	}
	cerealsAfterLegume = []candidate{{"Rice", 95}, {"Wheat", 93}, {"Maize", 90}, {"Sugarcane", 85}}
	diversification    = []candidate{{"Rice", 80}, {"Wheat", 82}, {"Chickpea", 85}, {"Mustard", 78}}

	kharifCrops    = map[string]bool{"Rice": true, "Cotton": true, "Maize": true, "Soybean": true, "Groundnut": true}
	rabiCrops      = map[string]bool{"Wheat": true, "Chickpea": true, "Lentil": true, "Mustard": true}
	kharifFallback = []candidate{{"Rice", 90}, {"Cotton", 85}}
	rabiFallback   = []candidate{{"Wheat", 90}, {"Chickpea", 88}}
)

// nitrogenFixerCutoff triggers legume suggestions regardless of last family.
const nitrogenFixerCutoff = 35.0

// SuggestCrops ranks next-crop candidates. month is the caller's calendar
// month (1..12); anything else skips the seasonal filter.
func (e *Engine) SuggestCrops(history []CropCycle, current *NutrientReading, month int) CropSuggestions {
	if len(history) == 0 {
		return CropSuggestions{
			Suggested: e.score(starterCrops),
			Reason:    "Starter crops - you can begin with any major crop",
		}
	}

	last := history[len(history)-1]
	lowN := current != nil && current.Nitrogen < nitrogenFixerCutoff

	var base []candidate
	var reason string
	switch {
	case last.CropFamily == FamilyCereal || last.CropFamily == FamilyOilseed || lowN:
		base = nitrogenFixers
		reason = fmt.Sprintf("Nitrogen depleted after %s. Legumes will restore soil nitrogen.", last.CropName)
	case last.CropFamily == FamilyLegume:
		base = cerealsAfterLegume
		reason = "Plant cereals after legumes - soil nitrogen is enriched"
	default:
		base = diversification
		reason = fmt.Sprintf("Rotate to different family after %s", last.CropFamily)
	}

	season := SeasonForMonth(month)
	switch season {
	case SeasonKharif:
		base = filterCandidates(base, kharifCrops, kharifFallback)
		reason += " (Kharif season)"
	case SeasonRabi:
		base = filterCandidates(base, rabiCrops, rabiFallback)
		reason += " (Rabi season)"
	}
	if len(base) > maxSuggestions {
		base = base[:maxSuggestions]
	}
	return CropSuggestions{Suggested: e.score(base), Reason: reason, Season: season}
}

func filterCandidates(in []candidate, allowed map[string]bool, fallback []candidate) []candidate {
	out := make([]candidate, 0, len(in))
	for _, c := range in {
		if allowed[c.name] {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// score attaches catalog metadata. Crops missing from the catalog keep only
// name and score.
func (e *Engine) score(list []candidate) []ScoredCrop {
	out := make([]ScoredCrop, 0, len(list))
	for _, c := range list {
		sc := ScoredCrop{Name: c.name, Score: c.score}
		if info, ok := e.ref.Crops[c.name]; ok {
			sc.YieldRange = info.YieldRange
			sc.PriceRange = info.PriceRange
			sc.WaterNeed = info.WaterNeed
			sc.DurationDays = info.DurationDays
		}
		out = append(out, sc)
	}
	return out
}
