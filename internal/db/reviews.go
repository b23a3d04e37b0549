package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/spec-customizer/internal/types"
)

// CreateReview stores a review session and its suggestions in one transaction.
func (db *DB) CreateReview(ctx context.Context, id uuid.UUID, fileName, text string, suggestions []types.Suggestion) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO reviews (id, file_name, text) VALUES ($1, $2, $3)`,
		id, fileName, text,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	for i, s := range suggestions {
		body, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal suggestion %s: %w", s.ID, err)
		}
		status := s.Status
		if status == "" {
			status = types.StatusPending
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO review_suggestions (review_id, suggestion_id, position, status, body)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, s.ID, i, string(status), body,
		)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit review: %w", err)
	}
	return nil
}

// GetReview retrieves a review and its suggestions. Returns nil when not found.
func (db *DB) GetReview(ctx context.Context, id uuid.UUID) (*Review, error) {
	var r Review
	err := db.pool.QueryRow(ctx,
		`SELECT id, file_name, text, created_at FROM reviews WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.FileName, &r.Text, &r.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT status, body FROM review_suggestions
		 WHERE review_id = $1 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	r.Suggestions = []types.Suggestion{}
	for rows.Next() {
		var status string
		var body []byte
		if err := rows.Scan(&status, &body); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		s, err := decodeSuggestion(status, body)
		if err != nil {
			return nil, err
		}
		r.Suggestions = append(r.Suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read suggestions: %w", err)
	}
	return &r, nil
}

// UpdateSuggestionStatus moves a pending suggestion to status. The update only
// matches pending rows, so concurrent decisions on the same suggestion cannot
// both succeed. Reports whether a row changed.
func (db *DB) UpdateSuggestionStatus(ctx context.Context, reviewID uuid.UUID, suggestionID string, status types.SuggestionStatus) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE review_suggestions SET status = $3, decided_at = NOW()
		 WHERE review_id = $1 AND suggestion_id = $2 AND status = 'pending'`,
		reviewID, suggestionID, string(status),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update suggestion %s: %w", suggestionID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ApproveAllPending approves every pending suggestion of a review and returns
// the approved ids in analysis order.
func (db *DB) ApproveAllPending(ctx context.Context, reviewID uuid.UUID) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`WITH updated AS (
		     UPDATE review_suggestions SET status = 'approved', decided_at = NOW()
		     WHERE review_id = $1 AND status = 'pending'
		     RETURNING suggestion_id, position
		 )
		 SELECT suggestion_id FROM updated ORDER BY position`,
		reviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to approve suggestions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// decodeSuggestion restores a stored suggestion; the status column wins over
// the status captured in the body at creation time.
func decodeSuggestion(status string, body []byte) (types.Suggestion, error) {
	var s types.Suggestion
	if err := json.Unmarshal(body, &s); err != nil {
		return types.Suggestion{}, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}
	s.Status = types.SuggestionStatus(status)
	return s, nil
}
