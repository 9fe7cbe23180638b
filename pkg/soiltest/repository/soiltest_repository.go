package repository

import "agroadvisor/entities"

type SoilTestRepository interface {
	Create(t *entities.SoilTest) error
	ListByField(fieldID uint, limit int) ([]entities.SoilTest, error)
}
