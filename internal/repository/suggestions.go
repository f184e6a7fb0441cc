package repository

import (
	"context"
	"database/sql"

	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/jmoiron/sqlx"
)

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.Suggestion) error
	LatestByFileID(ctx context.Context, fileID string) (*models.Suggestion, error)
}

type suggestionRepository struct {
	db *sqlx.DB
}

func NewSuggestionRepository(db *sqlx.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) error {
	query := `
		INSERT INTO suggestions (id, file_id, model_name, raw_model_output, summary_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		suggestion.ID,
		suggestion.FileID,
		suggestion.ModelName,
		string(suggestion.RawModelOutput),
		suggestion.SummaryText,
		suggestion.CreatedAt,
	)

	return err
}

func (r *suggestionRepository) LatestByFileID(ctx context.Context, fileID string) (*models.Suggestion, error) {
	var suggestion models.Suggestion

	query := `
		SELECT id, file_id, model_name, raw_model_output, summary_text, created_at
		FROM suggestions
		WHERE file_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &suggestion, query, fileID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &suggestion, nil
}
