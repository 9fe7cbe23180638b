package entities

import "time"

// SoilHealth is a soil reading as stored on a field, a cycle or a test.
type SoilHealth struct {
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	PH            float64 `json:"ph"`
	OrganicMatter float64 `json:"organic_matter"`
}

// DefaultSoilHealth is assigned to new fields until a test is recorded.
func DefaultSoilHealth() SoilHealth {
	return SoilHealth{Nitrogen: 40, Phosphorus: 30, Potassium: 30, PH: 6.5, OrganicMatter: 2.0}
}

type Field struct {
	FieldID      uint        `gorm:"primaryKey" json:"field_id"`
	UserID       string      `json:"user_id" gorm:"index"`
	Name         string      `json:"name"`
	AreaHa       float64     `json:"area"` // hectares
	Soil         SoilHealth  `gorm:"embedded;embeddedPrefix:soil_" json:"current_soil_health"`
	LastTestedAt *time.Time  `json:"last_tested_at"`
	Cycles       []CropCycle `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"rotation_history"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FertilizerUse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// CropCycle rows are append-only; Seq keeps insertion order per field.
type CropCycle struct {
	CycleID     uint            `gorm:"primaryKey" json:"cycle_id"`
	FieldID     uint            `gorm:"index" json:"field_id"`
	Seq         int             `json:"seq"`
	CropName    string          `json:"crop_name"`
	CropFamily  string          `json:"crop_family"`
	Season      string          `json:"season"`
	Year        int             `json:"year"`
	PlantedDate time.Time       `json:"planted_date"`
	HarvestDate *time.Time      `json:"harvest_date"`
	Yield       *float64        `json:"yield"`
	YieldUnit   string          `json:"yield_unit"`
	SoilBefore  *SoilHealth     `gorm:"serializer:json" json:"soil_health_before"`
	SoilAfter   *SoilHealth     `gorm:"serializer:json" json:"soil_health_after"`
	Fertilizers []FertilizerUse `gorm:"serializer:json" json:"fertilizers_used"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}
