package service

import (
	"agroadvisor/entities"
	"agroadvisor/pkg/agronomy"
)

// Result is an advisory report plus related knowledge-base articles.
type Result struct {
	Report   agronomy.AdvisoryReport `json:"report"`
	Articles []entities.ArticleRef   `json:"articles"`
}

// A nil month means the current month in the configured time zone.
type AdvisoryService interface {
	ForField(fieldID uint, uid string, month *int) (*Result, error)
	Stateless(f agronomy.Field, month *int) *Result
	// Schedule snapshots the report and turns its actions into tasks.
	Schedule(fieldID uint, uid string, month *int) (*entities.Advisory, []entities.ScheduleTask, error)
	History(fieldID uint, uid string) ([]entities.Advisory, error)
}
