package service

import "agroadvisor/entities"

// SoilPatch is a partial soil update; nil members keep the current value.
type SoilPatch struct {
	Nitrogen      *float64 `json:"nitrogen"`
	Phosphorus    *float64 `json:"phosphorus"`
	Potassium     *float64 `json:"potassium"`
	PH            *float64 `json:"ph"`
	OrganicMatter *float64 `json:"organic_matter"`
	Note          string   `json:"note"`
}

type FieldService interface {
	CreateField(f *entities.Field) (*entities.Field, error)
	ListFields(uid string) ([]entities.Field, error)
	GetFieldByID(id uint, uid string) (*entities.Field, error)
	UpdateField(id uint, uid string, name *string, area *float64) (*entities.Field, error)
	DeleteField(id uint, uid string) error
	AddCrop(id uint, uid string, c *entities.CropCycle) (*entities.Field, error)
	UpdateSoilHealth(id uint, uid string, p SoilPatch) (*entities.Field, error)
}
