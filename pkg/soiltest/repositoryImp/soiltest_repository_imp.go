package repositoryImp

import (
	"gorm.io/gorm"

	"agroadvisor/entities"
	"agroadvisor/pkg/soiltest/repository"
)

type soilTestRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilTestRepository { return &soilTestRepo{db} }

func (r *soilTestRepo) Create(t *entities.SoilTest) error { return r.db.Create(t).Error }

// ListByField returns the newest tests first.
func (r *soilTestRepo) ListByField(fieldID uint, limit int) ([]entities.SoilTest, error) {
	var out []entities.SoilTest
	q := r.db.Where("field_id = ?", fieldID).Order("date DESC").Order("test_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
