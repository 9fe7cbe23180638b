package repositoryImp

import (
	"gorm.io/gorm"

	"agroadvisor/entities"
	"agroadvisor/pkg/advisory/repository"
)

type advisoryRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdvisoryRepository { return &advisoryRepo{db} }

func (r *advisoryRepo) CreateWithTasks(a *entities.Advisory, tasks []entities.ScheduleTask) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&entities.Advisory{}).Where("field_id = ?", a.FieldID).
			Select("COALESCE(MAX(version), 0)").Scan(&last).Error; err != nil {
			return err
		}
		a.Version = last + 1
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		for i := range tasks {
			tasks[i].FieldID = a.FieldID
			tasks[i].AdvisoryID = a.AdvisoryID
		}
		return tx.Create(&tasks).Error
	})
}

func (r *advisoryRepo) ListByField(fieldID uint) ([]entities.Advisory, error) {
	as := []entities.Advisory{}
	if err := r.db.Where("field_id = ?", fieldID).Order("version ASC").Find(&as).Error; err != nil {
		return nil, err
	}
	return as, nil
}
