package serviceImp

import (
	"strconv"

	"agroadvisor/entities"
	"agroadvisor/pkg/agronomy"
)

func toReading(s *entities.SoilHealth) *agronomy.NutrientReading {
	if s == nil {
		return nil
	}
	return &agronomy.NutrientReading{
		Nitrogen:      s.Nitrogen,
		Phosphorus:    s.Phosphorus,
		Potassium:     s.Potassium,
		PH:            s.PH,
		OrganicMatter: s.OrganicMatter,
	}
}

// ToAgronomyField converts a stored field into the engine snapshot. Cycles
// must already be in seq order.
func ToAgronomyField(f *entities.Field) agronomy.Field {
	soil := f.Soil
	out := agronomy.Field{
		ID:                strconv.FormatUint(uint64(f.FieldID), 10),
		Name:              f.Name,
		Area:              f.AreaHa,
		CurrentSoilHealth: toReading(&soil),
		RotationHistory:   make([]agronomy.CropCycle, 0, len(f.Cycles)),
	}
	for _, c := range f.Cycles {
		cc := agronomy.CropCycle{
			CropName:         c.CropName,
			CropFamily:       agronomy.CropFamily(c.CropFamily),
			Season:           agronomy.Season(c.Season),
			Year:             c.Year,
			PlantedDate:      c.PlantedDate,
			HarvestDate:      c.HarvestDate,
			Yield:            c.Yield,
			YieldUnit:        c.YieldUnit,
			SoilHealthBefore: toReading(c.SoilBefore),
			SoilHealthAfter:  toReading(c.SoilAfter),
			Notes:            c.Notes,
		}
		for _, fu := range c.Fertilizers {
			cc.FertilizersUsed = append(cc.FertilizersUsed, agronomy.FertilizerUse{Name: fu.Name, Amount: fu.Amount, Unit: fu.Unit})
		}
		out.RotationHistory = append(out.RotationHistory, cc)
	}
	return out
}
