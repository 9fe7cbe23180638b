package service

import "agroadvisor/entities"

type ScheduleService interface {
	List(fieldID uint, uid string, from, to string) ([]entities.ScheduleTask, error)
	Patch(taskID uint, uid string, status string, qty *float64) error
}
