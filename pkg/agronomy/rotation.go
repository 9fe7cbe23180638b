package agronomy

import "fmt"

// AnalyzeRotation classifies rotation health. Rules are checked in order and
// exactly one fires.
func AnalyzeRotation(history []CropCycle) RotationPattern {
	if len(history) < 2 {
		return RotationPattern{
			Pattern:  PatternInsufficientData,
			Severity: SeverityInfo,
			Message:  "Add 2+ crops for analysis",
		}
	}

	families := distinctFamilies(history)
	hasLegume, hasCereal := false, false
	for _, f := range families {
		switch f {
		case FamilyLegume:
			hasLegume = true
		case FamilyCereal:
			hasCereal = true
		}
	}

	switch {
	case len(families) == 1:
		family := families[0]
		consecutiveSame := len(history)
		if distinctYears(history) >= 3 || consecutiveSame >= 4 {
			return RotationPattern{
				Pattern:        PatternMonoculture,
				Severity:       SeverityCritical,
				Message:        fmt.Sprintf("%d consecutive %s crops - severe soil degradation risk", consecutiveSame, family),
				IntervalAdvice: fmt.Sprintf("Replant %s crops after 2-3 years interval", family),
			}
		}
		return RotationPattern{
			Pattern:        PatternMonoculture,
			Severity:       SeverityWarning,
			Message:        fmt.Sprintf("%d %s seasons - diversify soon", consecutiveSame, family),
			IntervalAdvice: fmt.Sprintf("Rotate to a different family than %s next season", family),
		}
	case hasLegume && hasCereal:
		return RotationPattern{
			Pattern:        PatternLegumeCereal,
			Severity:       SeverityGood,
			Message:        "Nitrogen balance maintained",
			IntervalAdvice: "Continue alternating every 1-2 seasons",
		}
	case len(families) >= 3:
		return RotationPattern{
			Pattern:        PatternMultiCrop,
			Severity:       SeverityExcellent,
			Message:        fmt.Sprintf("%d crop families - optimal soil health", len(families)),
			IntervalAdvice: "Maintain diversity",
		}
	default:
		return RotationPattern{
			Pattern:        PatternTwoCrop,
			Severity:       SeverityFair,
			Message:        "Consider adding a third crop family",
			IntervalAdvice: "Rotate every 2 seasons",
		}
	}
}

// distinctFamilies returns families in first-seen order.
func distinctFamilies(history []CropCycle) []CropFamily {
	seen := make(map[CropFamily]struct{}, len(history))
	var out []CropFamily
	for _, c := range history {
		if _, ok := seen[c.CropFamily]; ok {
			continue
		}
		seen[c.CropFamily] = struct{}{}
		out = append(out, c.CropFamily)
	}
	return out
}

func distinctYears(history []CropCycle) int {
	years := make(map[int]struct{}, len(history))
	for _, c := range history {
		years[c.Year] = struct{}{}
	}
	return len(years)
}
