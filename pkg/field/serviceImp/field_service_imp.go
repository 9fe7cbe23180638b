package serviceImp

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"agroadvisor/entities"
	"agroadvisor/pkg/agronomy"
	repo "agroadvisor/pkg/field/repository"
	"agroadvisor/pkg/field/service"
)

// YieldUnits are the units a cycle yield may be reported in. Only t/ha is
// comparable against benchmarks.
var YieldUnits = map[string]bool{"t/ha": true, "kg/ha": true, "quintal/ha": true, "tons": true, "kg": true}

type fieldSvc struct {
	r   repo.FieldRepository
	log *zap.Logger
	now func() time.Time
}

func NewFieldService(r repo.FieldRepository, log *zap.Logger, now func() time.Time) service.FieldService {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &fieldSvc{r: r, log: log.Named("field"), now: now}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", entities.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validArea(a float64) bool { return !math.IsNaN(a) && !math.IsInf(a, 0) && a > 0 }

func (s *fieldSvc) CreateField(f *entities.Field) (*entities.Field, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return nil, invalid("name is required")
	}
	if !validArea(f.AreaHa) {
		return nil, invalid("area must be a positive number of hectares")
	}
	if f.Soil == (entities.SoilHealth{}) {
		f.Soil = entities.DefaultSoilHealth()
	} else if err := validateSoil(f.Soil); err != nil {
		return nil, err
	}
	if err := s.r.Create(f); err != nil {
		return nil, err
	}
	s.log.Info("field created", zap.Uint("field_id", f.FieldID), zap.String("uid", f.UserID))
	return f, nil
}

func (s *fieldSvc) ListFields(uid string) ([]entities.Field, error) { return s.r.ListByUser(uid) }

func (s *fieldSvc) GetFieldByID(id uint, uid string) (*entities.Field, error) {
	return s.r.FindByID(id, uid)
}

func (s *fieldSvc) UpdateField(id uint, uid string, name *string, area *float64) (*entities.Field, error) {
	f, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, invalid("name must not be empty")
		}
		f.Name = n
	}
	if area != nil {
		if !validArea(*area) {
			return nil, invalid("area must be a positive number of hectares")
		}
		f.AreaHa = *area
	}
	if err := s.r.UpdateInfo(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) DeleteField(id uint, uid string) error {
	if err := s.r.Delete(id, uid); err != nil {
		return err
	}
	s.log.Info("field deleted", zap.Uint("field_id", id))
	return nil
}

func (s *fieldSvc) AddCrop(id uint, uid string, c *entities.CropCycle) (*entities.Field, error) {
	if err := validateCycle(c); err != nil {
		return nil, err
	}
	f, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.r.AppendCycle(f, c, c.SoilAfter, s.now()); err != nil {
		return nil, err
	}
	s.log.Info("crop cycle added",
		zap.Uint("field_id", f.FieldID),
		zap.String("crop", c.CropName),
		zap.Int("seq", c.Seq),
		zap.Bool("soil_updated", c.SoilAfter != nil))
	return f, nil
}

func (s *fieldSvc) UpdateSoilHealth(id uint, uid string, p service.SoilPatch) (*entities.Field, error) {
	f, err := s.r.FindByID(id, uid)
	if err != nil {
		return nil, err
	}
	soil := f.Soil
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&soil.Nitrogen, p.Nitrogen)
	set(&soil.Phosphorus, p.Phosphorus)
	set(&soil.Potassium, p.Potassium)
	set(&soil.PH, p.PH)
	set(&soil.OrganicMatter, p.OrganicMatter)
	if err := validateSoil(soil); err != nil {
		return nil, err
	}
	if err := s.r.UpdateSoil(f, soil, strings.TrimSpace(p.Note), s.now()); err != nil {
		return nil, err
	}
	return f, nil
}

func validateCycle(c *entities.CropCycle) error {
	c.CropName = strings.TrimSpace(c.CropName)
	if c.CropName == "" {
		return invalid("cropName is required")
	}
	if !agronomy.CropFamily(c.CropFamily).Valid() {
		return invalid("unknown crop family %q", c.CropFamily)
	}
	if !agronomy.Season(c.Season).Valid() {
		return invalid("unknown season %q", c.Season)
	}
	if c.Year < 1900 || c.Year > 2200 {
		return invalid("year %d out of range", c.Year)
	}
	if c.PlantedDate.IsZero() {
		return invalid("plantedDate is required")
	}
	if c.HarvestDate != nil && c.HarvestDate.Before(c.PlantedDate) {
		return invalid("harvestDate is before plantedDate")
	}
	if c.Yield != nil && (math.IsNaN(*c.Yield) || math.IsInf(*c.Yield, 0) || *c.Yield < 0) {
		return invalid("yield must be a non-negative number")
	}
	if c.YieldUnit == "" {
		c.YieldUnit = agronomy.BenchmarkUnit
	}
	if !YieldUnits[c.YieldUnit] {
		return invalid("unknown yield unit %q", c.YieldUnit)
	}
	for _, r := range []*entities.SoilHealth{c.SoilBefore, c.SoilAfter} {
		if r == nil {
			continue
		}
		if err := validateSoil(*r); err != nil {
			return err
		}
	}
	return nil
}

func validateSoil(s entities.SoilHealth) error {
	for name, v := range map[string]float64{
		"nitrogen": s.Nitrogen, "phosphorus": s.Phosphorus, "potassium": s.Potassium,
		"organic_matter": s.OrganicMatter,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return invalid("%s must be a non-negative number", name)
		}
	}
	if math.IsNaN(s.PH) || s.PH < 0 || s.PH > 14 {
		return invalid("ph must be between 0 and 14")
	}
	return nil
}
