package repository

import (
	"context"
	"database/sql"

	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/jmoiron/sqlx"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id string) (*models.File, error)
	List(ctx context.Context) ([]models.File, error)
	UpdateRegeneratedPath(ctx context.Context, id, storagePath string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, company_name, original_filename, storage_path_original, storage_path_pdf, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.CompanyName,
		file.OriginalFilename,
		file.StoragePathOriginal,
		file.StoragePathPDF,
		file.CreatedAt,
	)

	return err
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	var file models.File

	query := `
		SELECT id, company_name, original_filename, storage_path_original,
		       storage_path_pdf, storage_path_regenerated, created_at
		FROM files
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &file, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &file, nil
}

func (r *fileRepository) List(ctx context.Context) ([]models.File, error) {
	files := []models.File{}

	query := `
		SELECT id, company_name, original_filename, storage_path_original,
		       storage_path_pdf, storage_path_regenerated, created_at
		FROM files
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &files, query); err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) UpdateRegeneratedPath(ctx context.Context, id, storagePath string) error {
	query := `
		UPDATE files
		SET storage_path_regenerated = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, storagePath)
	return err
}
