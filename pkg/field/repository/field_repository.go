package repository

import (
	"time"

	"agroadvisor/entities"
)

type FieldRepository interface {
	Create(f *entities.Field) error
	FindByID(id uint, uid string) (*entities.Field, error)
	ListByUser(uid string) ([]entities.Field, error)
	UpdateInfo(f *entities.Field) error
	Delete(id uint, uid string) error
	// AppendCycle stores c as the next cycle of the field. A non-nil soil
	// replaces the field's current soil health and is logged as a soil test.
	AppendCycle(f *entities.Field, c *entities.CropCycle, soil *entities.SoilHealth, at time.Time) error
	// UpdateSoil replaces the field's current soil health and logs a test.
	UpdateSoil(f *entities.Field, soil entities.SoilHealth, note string, at time.Time) error
}
