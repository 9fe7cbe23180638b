package entities

import (
	"time"

	"agroadvisor/pkg/agronomy"
)

// Advisory is a persisted report snapshot. The report is stored as JSON so
// later reference table changes do not rewrite history.
type Advisory struct {
	AdvisoryID       uint                    `gorm:"primaryKey" json:"advisory_id"`
	FieldID          uint                    `json:"field_id" gorm:"uniqueIndex:idx_field_version"`
	Version          int                     `json:"version" gorm:"uniqueIndex:idx_field_version"`
	Month            int                     `json:"month"`
	ReferenceVersion string                  `json:"reference_version"`
	Report           agronomy.AdvisoryReport `gorm:"serializer:json" json:"report"`
	CreatedAt        time.Time               `json:"created_at"`

	// not persisted: articles suggested for the response payload
	SuggestedArticles []ArticleRef `gorm:"-" json:"suggested_articles,omitempty"`
}

type ArticleRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
