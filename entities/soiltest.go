package entities

import "time"

// SoilTest is one recorded change of a field's current soil health.
type SoilTest struct {
	TestID    uint       `gorm:"primaryKey" json:"test_id"`
	FieldID   uint       `gorm:"index" json:"field_id"`
	Date      time.Time  `json:"date"`
	Source    string     `json:"source"` // manual|crop_cycle
	Soil      SoilHealth `gorm:"embedded;embeddedPrefix:soil_" json:"soil"`
	Note      string     `json:"note"`
	CreatedAt time.Time
}
