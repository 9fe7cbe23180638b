package entities

import "time"

type ScheduleTask struct {
	TaskID     uint      `gorm:"primaryKey" json:"task_id"`
	FieldID    uint      `gorm:"index" json:"field_id"`
	AdvisoryID uint      `gorm:"index" json:"advisory_id"`
	Date       time.Time `json:"date"`
	Title      string    `json:"title"`
	Type       string    `json:"type"` // recommendation kind, e.g. nitrogen|acidic-soil
	Priority   string    `json:"priority"`
	Qty        *float64  `json:"qty"`
	Unit       string    `json:"unit"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"` // todo|done|skipped
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
