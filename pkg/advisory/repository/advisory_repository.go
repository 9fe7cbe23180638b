package repository

import "agroadvisor/entities"

type AdvisoryRepository interface {
	// CreateWithTasks numbers a as its field's next version and stores it
	// with tasks in one transaction. Tasks get a's AdvisoryID.
	CreateWithTasks(a *entities.Advisory, tasks []entities.ScheduleTask) error
	ListByField(fieldID uint) ([]entities.Advisory, error)
}
