package repository

import (
	"context"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/jmoiron/sqlx"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	MarkSucceeded(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, errMsg string) error
	ListByFileID(ctx context.Context, fileID string) ([]models.Job, error)
}

type jobRepository struct {
	db *sqlx.DB
}

func NewJobRepository(db *sqlx.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (id, file_id, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		job.ID,
		job.FileID,
		job.Type,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)

	return err
}

func (r *jobRepository) MarkSucceeded(ctx context.Context, id string) error {
	query := `
		UPDATE jobs
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`

	_, err := r.db.ExecContext(ctx, query, id, models.JobStatusSucceeded, time.Now(), models.JobStatusRunning)
	return err
}

func (r *jobRepository) MarkFailed(ctx context.Context, id, errMsg string) error {
	query := `
		UPDATE jobs
		SET status = $2, error = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`

	_, err := r.db.ExecContext(ctx, query, id, models.JobStatusFailed, errMsg, time.Now(), models.JobStatusRunning)
	return err
}

func (r *jobRepository) ListByFileID(ctx context.Context, fileID string) ([]models.Job, error) {
	jobs := []models.Job{}

	query := `
		SELECT id, file_id, type, status, error, created_at, updated_at
		FROM jobs
		WHERE file_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &jobs, query, fileID); err != nil {
		return nil, err
	}

	return jobs, nil
}
