package service

import "agroadvisor/entities"

type SoilTestService interface {
	History(fieldID uint, uid string, limit int) ([]entities.SoilTest, error)
}
