package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"agroadvisor/entities"
	"agroadvisor/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func orderedCycles(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }

func (r *fieldRepo) Create(f *entities.Field) error { return r.db.Create(f).Error }

func (r *fieldRepo) FindByID(id uint, uid string) (*entities.Field, error) {
	var f entities.Field
	err := r.db.Preload("Cycles", orderedCycles).
		Where("field_id = ? AND user_id = ?", id, uid).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) ListByUser(uid string) ([]entities.Field, error) {
	out := []entities.Field{}
	if err := r.db.Preload("Cycles", orderedCycles).
		Where("user_id = ?", uid).Order("updated_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fieldRepo) UpdateInfo(f *entities.Field) error {
	return r.db.Model(f).Select("name", "area_ha").Updates(f).Error
}

func (r *fieldRepo) Delete(id uint, uid string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("field_id = ? AND user_id = ?", id, uid).Delete(&entities.Field{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrNotFound
		}
		for _, m := range []any{&entities.CropCycle{}, &entities.SoilTest{}, &entities.ScheduleTask{}, &entities.Advisory{}} {
			if err := tx.Where("field_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *fieldRepo) AppendCycle(f *entities.Field, c *entities.CropCycle, soil *entities.SoilHealth, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		if err := tx.Model(&entities.CropCycle{}).Where("field_id = ?", f.FieldID).
			Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		c.FieldID = f.FieldID
		c.Seq = maxSeq + 1
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if soil != nil {
			if err := applySoil(tx, f, *soil, "crop_cycle", c.CropName+" harvest", at); err != nil {
				return err
			}
		}
		f.Cycles = append(f.Cycles, *c)
		return tx.Model(f).Update("updated_at", at).Error
	})
}

func (r *fieldRepo) UpdateSoil(f *entities.Field, soil entities.SoilHealth, note string, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applySoil(tx, f, soil, "manual", note, at)
	})
}

func applySoil(tx *gorm.DB, f *entities.Field, soil entities.SoilHealth, source, note string, at time.Time) error {
	upd := map[string]any{
		"soil_nitrogen":       soil.Nitrogen,
		"soil_phosphorus":     soil.Phosphorus,
		"soil_potassium":      soil.Potassium,
		"soil_ph":             soil.PH,
		"soil_organic_matter": soil.OrganicMatter,
		"last_tested_at":      at,
	}
	if err := tx.Model(&entities.Field{}).Where("field_id = ?", f.FieldID).Updates(upd).Error; err != nil {
		return err
	}
	test := &entities.SoilTest{FieldID: f.FieldID, Date: at, Source: source, Soil: soil, Note: note}
	if err := tx.Create(test).Error; err != nil {
		return err
	}
	f.Soil = soil
	f.LastTestedAt = &at
	return nil
}
