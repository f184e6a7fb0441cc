package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/jmoiron/sqlx"
)

type ReviewRepository interface {
	// Upsert writes the review keyed by file identity: the first save for a
	// file inserts, every later save updates the same row in place.
	Upsert(ctx context.Context, review *models.Review) error
	GetByFileID(ctx context.Context, fileID string) (*models.Review, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListApproved(ctx context.Context) ([]models.ApprovedReviewRow, error)
}

type reviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *models.Review) error {
	existing, err := r.GetByFileID(ctx, review.FileID)
	if err != nil {
		return err
	}

	now := time.Now()

	if existing != nil {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
		review.UpdatedAt = now

		query := `
			UPDATE reviews
			SET suggestion_id = $2, final_text = $3, editor_notes = $4, status = $5, updated_at = $6
			WHERE id = $1
		`

		_, err := r.db.ExecContext(ctx, query,
			review.ID,
			review.SuggestionID,
			review.FinalText,
			review.EditorNotes,
			review.Status,
			review.UpdatedAt,
		)
		return err
	}

	review.CreatedAt = now
	review.UpdatedAt = now

	query := `
		INSERT INTO reviews (id, file_id, suggestion_id, final_text, editor_notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		review.ID,
		review.FileID,
		review.SuggestionID,
		review.FinalText,
		review.EditorNotes,
		review.Status,
		review.CreatedAt,
		review.UpdatedAt,
	)

	return err
}

func (r *reviewRepository) GetByFileID(ctx context.Context, fileID string) (*models.Review, error) {
	var review models.Review

	query := `
		SELECT id, file_id, suggestion_id, final_text, editor_notes, status, created_at, updated_at
		FROM reviews
		WHERE file_id = $1
	`

	err := r.db.GetContext(ctx, &review, query, fileID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE reviews
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	return err
}

func (r *reviewRepository) ListApproved(ctx context.Context) ([]models.ApprovedReviewRow, error) {
	rows := []models.ApprovedReviewRow{}

	query := `
		SELECT r.file_id, f.company_name, f.original_filename,
		       r.final_text, r.editor_notes, r.created_at
		FROM reviews r
		JOIN files f ON f.id = r.file_id
		WHERE r.status = $1
		ORDER BY r.created_at DESC
	`

	if err := r.db.SelectContext(ctx, &rows, query, models.ReviewStatusApproved); err != nil {
		return nil, err
	}

	return rows, nil
}
