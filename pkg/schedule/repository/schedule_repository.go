package repository

import (
	"time"

	"agroadvisor/entities"
)

type ScheduleRepository interface {
	List(fieldID uint, from, to time.Time) ([]entities.ScheduleTask, error)
	// PatchStatus updates a task whose field belongs to uid.
	PatchStatus(taskID uint, uid string, status string, qty *float64) error
}
