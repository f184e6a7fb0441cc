package models

import (
	"encoding/json"
	"time"
)

// Job types.
const (
	JobTypeAnalyze    = "ANALYZE"
	JobTypeRegenerate = "REGENERATE"
)

// Job statuses.
const (
	JobStatusRunning   = "RUNNING"
	JobStatusSucceeded = "SUCCEEDED"
	JobStatusFailed    = "FAILED"
)

// Review statuses.
const (
	ReviewStatusDraft    = "DRAFT"
	ReviewStatusApproved = "APPROVED"
)

// Analysis modes.
const (
	AnalyzeModeText       = "text"
	AnalyzeModeAttachment = "attachment"
)

// File is one tracked factsheet upload.
type File struct {
	ID                      string    `json:"id" db:"id"`
	CompanyName             *string   `json:"company_name,omitempty" db:"company_name"`
	OriginalFilename        string    `json:"original_filename" db:"original_filename"`
	StoragePathOriginal     string    `json:"storage_path_original" db:"storage_path_original"`
	StoragePathPDF          *string   `json:"storage_path_pdf,omitempty" db:"storage_path_pdf"`
	StoragePathRegenerated  *string   `json:"storage_path_regenerated,omitempty" db:"storage_path_regenerated"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
}

// Suggestion is one immutable AI-produced assessment for a file.
type Suggestion struct {
	ID             string          `json:"id" db:"id"`
	FileID         string          `json:"file_id" db:"file_id"`
	ModelName      string          `json:"model_name" db:"model_name"`
	RawModelOutput json.RawMessage `json:"raw_model_output" db:"raw_model_output"`
	SummaryText    string          `json:"summary_text" db:"summary_text"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// Review is the human-owned draft or approved final text for a file.
// At most one live row exists per file; saves upsert in place.
type Review struct {
	ID           string    `json:"id" db:"id"`
	FileID       string    `json:"file_id" db:"file_id"`
	SuggestionID string    `json:"suggestion_id" db:"suggestion_id"`
	FinalText    string    `json:"final_text" db:"final_text"`
	EditorNotes  *string   `json:"editor_notes,omitempty" db:"editor_notes"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Job is an audit record of one attempted Analyze or Regenerate operation.
// Rows are append-only and never mutated after reaching a terminal status.
type Job struct {
	ID        string    `json:"id" db:"id"`
	FileID    string    `json:"file_id" db:"file_id"`
	Type      string    `json:"type" db:"type"`
	Status    string    `json:"status" db:"status"`
	Error     *string   `json:"error,omitempty" db:"error"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ApprovedReviewRow is one row of the approved-reviews export, a review
// joined with its file.
type ApprovedReviewRow struct {
	FileID           string    `db:"file_id"`
	CompanyName      *string   `db:"company_name"`
	OriginalFilename string    `db:"original_filename"`
	FinalText        string    `db:"final_text"`
	EditorNotes      *string   `db:"editor_notes"`
	CreatedAt        time.Time `db:"created_at"`
}

type UploadItem struct {
	Filename string
	Data     []byte
}

type UploadRequest struct {
	Files       []UploadItem
	CompanyName *string
	// CompanionPDF is an optional PDF rendition of the deck, only accepted
	// alongside a single-file upload.
	CompanionPDF []byte
}

type AnalyzeRequest struct {
	Prompt string `json:"prompt,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

type ReviewRequest struct {
	SuggestionID string  `json:"suggestion_id"`
	FinalText    string  `json:"final_text"`
	EditorNotes  *string `json:"editor_notes,omitempty"`
}

// FileDetail is the full per-file view: latest suggestion and review, the
// complete job history, and time-bounded download links.
type FileDetail struct {
	File                   File        `json:"file"`
	Suggestion             *Suggestion `json:"suggestion,omitempty"`
	Review                 *Review     `json:"review,omitempty"`
	Jobs                   []Job       `json:"jobs"`
	DownloadURLOriginal    string      `json:"download_url_original,omitempty"`
	DownloadURLRegenerated string      `json:"download_url_regenerated,omitempty"`
}
