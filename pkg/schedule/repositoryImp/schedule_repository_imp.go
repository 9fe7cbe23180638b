package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"agroadvisor/entities"
	"agroadvisor/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScheduleRepository { return &schedRepo{db} }

// List filters by date when from/to are non-zero.
func (r *schedRepo) List(fieldID uint, from, to time.Time) ([]entities.ScheduleTask, error) {
	out := []entities.ScheduleTask{}
	q := r.db.Where("field_id = ?", fieldID)
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date <= ?", to)
	}
	if err := q.Order("date ASC").Order("task_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) PatchStatus(taskID uint, uid string, status string, qty *float64) error {
	upd := map[string]any{"status": status}
	if qty != nil {
		upd["qty"] = *qty
	}
	owned := r.db.Model(&entities.Field{}).Select("field_id").Where("user_id = ?", uid)
	res := r.db.Model(&entities.ScheduleTask{}).
		Where("task_id = ? AND field_id IN (?)", taskID, owned).
		Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrNotFound
	}
	return nil
}
