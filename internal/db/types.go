package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/spec-customizer/internal/types"
)

// SpecificationRecord is a stored generated specification.
type SpecificationRecord struct {
	ID            uuid.UUID                     `json:"id"`
	CharterSource string                        `json:"charter_source"`
	Content       *types.GeneratedSpecification `json:"content"`
	CreatedAt     time.Time                     `json:"created_at"`
}

// ArticleEdit is a stored user override for one article.
type ArticleEdit struct {
	SpecificationID uuid.UUID `json:"specification_id"`
	SectionNumber   string    `json:"section_number"`
	ArticleNumber   string    `json:"article_number"`
	Content         string    `json:"content"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Review is a stored review session with its suggestions in analysis order.
type Review struct {
	ID          uuid.UUID          `json:"id"`
	FileName    string             `json:"file_name"`
	Text        string             `json:"text"`
	CreatedAt   time.Time          `json:"created_at"`
	Suggestions []types.Suggestion `json:"suggestions"`
}
