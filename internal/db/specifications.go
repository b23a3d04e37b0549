package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/spec-customizer/internal/types"
)

// SaveSpecification stores a generated specification under id, replacing any
// previous content.
func (db *DB) SaveSpecification(ctx context.Context, id uuid.UUID, spec *types.GeneratedSpecification) error {
	content, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to marshal specification: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO specifications (id, charter_source, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET charter_source = $2, content = $3`,
		id, spec.Metadata.CharterSource, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save specification: %w", err)
	}
	return nil
}

// GetSpecification retrieves a specification by ID. Returns nil when not found.
func (db *DB) GetSpecification(ctx context.Context, id uuid.UUID) (*SpecificationRecord, error) {
	var rec SpecificationRecord
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, charter_source, content, created_at FROM specifications WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.CharterSource, &content, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get specification: %w", err)
	}

	rec.Content = &types.GeneratedSpecification{}
	if err := json.Unmarshal(content, rec.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal specification: %w", err)
	}
	return &rec, nil
}

// SaveArticleEdit upserts the override text for one article.
func (db *DB) SaveArticleEdit(ctx context.Context, specID uuid.UUID, sectionNumber, articleNumber, content string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO article_edits (specification_id, section_number, article_number, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (specification_id, section_number, article_number)
		 DO UPDATE SET content = $4, updated_at = NOW()`,
		specID, sectionNumber, articleNumber, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save article edit %s/%s: %w", sectionNumber, articleNumber, err)
	}
	return nil
}

// ListArticleEdits returns all overrides for a specification.
func (db *DB) ListArticleEdits(ctx context.Context, specID uuid.UUID) ([]ArticleEdit, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT specification_id, section_number, article_number, content, updated_at
		 FROM article_edits WHERE specification_id = $1
		 ORDER BY section_number, article_number`,
		specID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list article edits: %w", err)
	}
	defer rows.Close()

	var edits []ArticleEdit
	for rows.Next() {
		var e ArticleEdit
		if err := rows.Scan(&e.SpecificationID, &e.SectionNumber, &e.ArticleNumber, &e.Content, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article edit: %w", err)
		}
		edits = append(edits, e)
	}
	return edits, rows.Err()
}
