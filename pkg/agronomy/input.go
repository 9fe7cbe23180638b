package agronomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidField is wrapped by Field.Validate.
var ErrInvalidField = errors.New("invalid field")

// UnmarshalJSON leaves absent or null nutrients as NaN so they classify as
// Unknown and trigger no remediation, instead of reading as a measured 0.
func (r *NutrientReading) UnmarshalJSON(b []byte) error {
	var w struct {
		Nitrogen      *float64 `json:"nitrogen"`
		Phosphorus    *float64 `json:"phosphorus"`
		Potassium     *float64 `json:"potassium"`
		PH            *float64 `json:"pH"`
		OrganicMatter *float64 `json:"organicMatter"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*r = NutrientReading{
		Nitrogen:      orNaN(w.Nitrogen),
		Phosphorus:    orNaN(w.Phosphorus),
		Potassium:     orNaN(w.Potassium),
		PH:            orNaN(w.PH),
		OrganicMatter: orNaN(w.OrganicMatter),
	}
	return nil
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// Validate checks the structural rules callers outside storage must enforce
// before advising: a positive area and, for readings that are present,
// non-negative nutrients with pH in 0..14. Missing nutrients are allowed.
func (f Field) Validate() error {
	if !finite(f.Area) || f.Area <= 0 {
		return fmt.Errorf("%w: area must be a positive number of hectares", ErrInvalidField)
	}
	if err := f.CurrentSoilHealth.validate("currentSoilHealth"); err != nil {
		return err
	}
	for i, c := range f.RotationHistory {
		if err := c.SoilHealthBefore.validate(fmt.Sprintf("rotationHistory[%d].soilHealthBefore", i)); err != nil {
			return err
		}
		if err := c.SoilHealthAfter.validate(fmt.Sprintf("rotationHistory[%d].soilHealthAfter", i)); err != nil {
			return err
		}
	}
	return nil
}

func (r *NutrientReading) validate(path string) error {
	if r == nil {
		return nil
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"nitrogen", r.Nitrogen}, {"phosphorus", r.Phosphorus},
		{"potassium", r.Potassium}, {"organicMatter", r.OrganicMatter},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s.%s must not be negative", ErrInvalidField, path, v.name)
		}
	}
	if r.PH < 0 || r.PH > 14 {
		return fmt.Errorf("%w: %s.pH must be between 0 and 14", ErrInvalidField, path)
	}
	return nil
}
