package agronomy

import (
	"fmt"
	"math"
)

// Kinds of remediation items.
const (
	KindDiversification = "diversification"
	KindNitrogen        = "nitrogen"
	KindOrganicMatter   = "organic-matter"
	KindPhosphorus      = "phosphorus"
	KindAcidicSoil      = "acidic-soil"
	KindAlkalineSoil    = "alkaline-soil"
)

// Dosage constants. Nitrogen and lime scale with area and deficit; the other
// items use flat per-hectare ranges.
const (
	nitrogenLowCutoff  = 30.0
	nitrogenTarget     = 40.0
	vermicompostFactor = 4.0

	organicMatterCutoff = 2.0
	phosphorusCutoff    = 20.0

	acidicCutoff   = 6.0
	alkalineCutoff = 8.0
	phTarget       = 6.5
	limeFactor     = 50.0
)

// remedyRule inspects a field and returns an item, or nil when it does not
// apply. PriorityRank is filled in by the generator.
type remedyRule func(f *Field) *RecommendationItem

// remedyRules run in this order; every rule is evaluated.
var remedyRules = []remedyRule{
	diversificationRule,
	nitrogenRule,
	organicMatterRule,
	phosphorusRule,
	acidicSoilRule,
	alkalineSoilRule,
}

// GenerateRecommendations evaluates every remediation rule against the field
// and numbers the items that fire. An empty slice means the soil is fine.
func GenerateRecommendations(f Field) []RecommendationItem {
	out := []RecommendationItem{}
	for _, rule := range remedyRules {
		item := rule(&f)
		if item == nil {
			continue
		}
		item.PriorityRank = len(out) + 1
		out = append(out, *item)
	}
	return out
}

func diversificationRule(f *Field) *RecommendationItem {
	if len(f.RotationHistory) < 2 || len(distinctFamilies(f.RotationHistory)) != 1 {
		return nil
	}
	return &RecommendationItem{
		Kind:       KindDiversification,
		Priority:   PriorityHigh,
		Icon:       "⚠️",
		Title:      "Crop Diversification Required",
		ActionText: "Avoid continuous cultivation of the same crop family. Rotate with legumes or other families.",
		GuideTitle: "Crop Diversification Guide",
		GuideSteps: []string{
			"Why crop rotation matters: Continuous monoculture increases pests, diseases and depletes specific nutrients.",
			"Cereals → Legumes: After wheat/rice, plant chickpea, lentil, mung bean. Legumes restore soil nitrogen naturally.",
			"2-3 year interval: Wait 2-3 years before replanting the same crop family in the same field.",
			"Example rotation: Rice (Kharif) → Wheat (Rabi) → Chickpea/Mung (Kharif) → Mustard (Rabi)",
			"Benefits: 15-25% yield increase, reduced chemical fertilizer needs.",
		},
	}
}

func nitrogenRule(f *Field) *RecommendationItem {
	soil := f.CurrentSoilHealth
	if soil == nil || !(soil.Nitrogen < nitrogenLowCutoff) {
		return nil
	}
	qty := scaledDosage((nitrogenTarget - soil.Nitrogen) * f.Area * vermicompostFactor)
	return &RecommendationItem{
		Kind:       KindNitrogen,
		Priority:   PriorityHigh,
		Icon:       "🌱",
		Title:      "Low Nitrogen",
		ActionText: fmt.Sprintf("Add %skg vermicompost for this field or plant legumes", formatQty(qty)),
		GuideTitle: "Nitrogen Enhancement Methods",
		GuideSteps: []string{
			"Organic manure: Apply 3-5 tons farmyard manure or 1-2 tons vermicompost per hectare.",
			"Green manure: Grow dhaincha or sunn hemp, incorporate into soil at flowering.",
			"Legume crops: Plant chickpea, mung bean, or black gram next - they fix atmospheric nitrogen.",
			"Urea (last resort): 50-75kg urea per hectare, split into 2-3 applications.",
			"Testing: Test soil every 6 months to monitor levels.",
		},
		Dosage: &Dosage{Material: "vermicompost", Quantity: qty, Unit: "kg"},
	}
}

func organicMatterRule(f *Field) *RecommendationItem {
	soil := f.CurrentSoilHealth
	if len(f.RotationHistory) < 2 || soil == nil || !(soil.OrganicMatter < organicMatterCutoff) {
		return nil
	}
	return &RecommendationItem{
		Kind:       KindOrganicMatter,
		Priority:   PriorityMedium,
		Icon:       "🍂",
		Title:      "Soil Fertility Declining",
		ActionText: "Consider green manure, organic compost, or cover crops.",
		GuideTitle: "Soil Improvement Detailed Guide",
		GuideSteps: []string{
			"What is green manure: Fast-growing crops (dhaincha, sunn hemp) ploughed into soil at flowering stage.",
			"When to apply: After harvest and 40-50 days before next planting.",
			"Cover crops: Grow berseem, cowpea to cover soil and suppress weeds.",
			"Composting: Mix crop residue, manure, green leaves - ready in 2-3 months.",
			"Benefits: Organic matter increases 0.5-1%, improves water retention.",
			"Tip: Never leave land bare - always grow something between seasons.",
		},
	}
}

func phosphorusRule(f *Field) *RecommendationItem {
	soil := f.CurrentSoilHealth
	if soil == nil || !(soil.Phosphorus < phosphorusCutoff) {
		return nil
	}
	return &RecommendationItem{
		Kind:       KindPhosphorus,
		Priority:   PriorityMedium,
		Icon:       "💪",
		Title:      "Low Phosphorus",
		ActionText: "Apply bone meal 15-20kg per hectare or rock phosphate 200-300kg per hectare",
		GuideTitle: "Phosphorus Management",
		GuideSteps: []string{
			"Bone meal: 15-20kg per hectare mixed into soil before planting.",
			"Rock phosphate: 200-300kg per hectare, slow release.",
			"Timing: Phosphorus aids root development, apply at sowing time.",
			"DAP fertilizer (chemical): 100-150kg per hectare.",
		},
		Rates: []ApplicationRate{
			{Material: "bone meal", Min: 15, Max: 20, Unit: "kg/ha"},
			{Material: "rock phosphate", Min: 200, Max: 300, Unit: "kg/ha"},
		},
	}
}

func acidicSoilRule(f *Field) *RecommendationItem {
	soil := f.CurrentSoilHealth
	if soil == nil || !(soil.PH < acidicCutoff) {
		return nil
	}
	qty := scaledDosage((phTarget - soil.PH) * f.Area * limeFactor)
	return &RecommendationItem{
		Kind:       KindAcidicSoil,
		Priority:   PriorityHigh,
		Icon:       "🧪",
		Title:      "Acidic Soil",
		ActionText: fmt.Sprintf("Apply %skg lime for this field", formatQty(qty)),
		GuideTitle: "Acidic Soil Correction",
		GuideSteps: []string{
			"Lime: Calcium carbonate (limestone powder) applied after harvest.",
			"Timing: 2-3 months before monsoon for proper mixing.",
			"Water: Light irrigation after lime application.",
			"Testing: Retest pH after 6 months.",
		},
		Dosage: &Dosage{Material: "lime", Quantity: qty, Unit: "kg"},
	}
}

func alkalineSoilRule(f *Field) *RecommendationItem {
	soil := f.CurrentSoilHealth
	if soil == nil || !(soil.PH > alkalineCutoff) {
		return nil
	}
	return &RecommendationItem{
		Kind:       KindAlkalineSoil,
		Priority:   PriorityHigh,
		Icon:       "🧪",
		Title:      "Alkaline Soil",
		ActionText: "Apply gypsum or sulfur 20-25kg per hectare",
		GuideTitle: "Alkaline Soil Correction",
		GuideSteps: []string{
			"Gypsum: 200-300kg per hectare before sowing.",
			"Sulfur: 20-25kg per hectare.",
			"Organic manure: Farmyard manure helps reduce pH.",
			"Drainage: Ensure good drainage system.",
		},
		Rates: []ApplicationRate{
			{Material: "gypsum or sulfur", Min: 20, Max: 25, Unit: "kg/ha"},
		},
	}
}

// scaledDosage rounds up to whole kilograms. Non-finite or negative input
// (bad area upstream) degrades to zero.
func scaledDosage(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return math.Ceil(v)
}

func formatQty(v float64) string { return fmt.Sprintf("%.0f", v) }
