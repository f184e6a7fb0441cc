package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/esgfactsheet/factsheet-ai/internal/analyzer"
	"github.com/esgfactsheet/factsheet-ai/internal/export"
	"github.com/esgfactsheet/factsheet-ai/internal/extractor"
	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/esgfactsheet/factsheet-ai/internal/pptx"
	"github.com/esgfactsheet/factsheet-ai/internal/render"
	"github.com/esgfactsheet/factsheet-ai/internal/repository"
	"github.com/esgfactsheet/factsheet-ai/internal/storage"
	"github.com/esgfactsheet/factsheet-ai/internal/utils"
)

// maxAnalysisChars caps the flattened deck text sent to the model.
const maxAnalysisChars = 80000

type PipelineService interface {
	Upload(ctx context.Context, req *models.UploadRequest) ([]models.File, error)
	Analyze(ctx context.Context, fileID string, req *models.AnalyzeRequest) (*models.Suggestion, error)
	SaveReview(ctx context.Context, fileID string, req *models.ReviewRequest) (*models.Review, error)
	Approve(ctx context.Context, fileID string) (*models.File, error)
	GetFile(ctx context.Context, id string) (*models.FileDetail, error)
	ListFiles(ctx context.Context) ([]models.File, error)
	ExportApproved(ctx context.Context) ([]byte, error)
}

type pipelineService struct {
	files       repository.FileRepository
	suggestions repository.SuggestionRepository
	reviews     repository.ReviewRepository
	jobs        repository.JobRepository
	storage     storage.Storage
	analyzer    analyzer.Analyzer
	logger      *utils.Logger
	urlTTL      time.Duration

	// locks serializes Analyze and Approve per file so a concurrent pair
	// cannot interleave the review flip and the regenerated-pointer write.
	locks sync.Map
}

func NewPipelineService(
	files repository.FileRepository,
	suggestions repository.SuggestionRepository,
	reviews repository.ReviewRepository,
	jobs repository.JobRepository,
	store storage.Storage,
	llm analyzer.Analyzer,
	logger *utils.Logger,
	urlTTL time.Duration,
) PipelineService {
	return &pipelineService{
		files:       files,
		suggestions: suggestions,
		reviews:     reviews,
		jobs:        jobs,
		storage:     store,
		analyzer:    llm,
		logger:      logger.With("component", "pipeline"),
		urlTTL:      urlTTL,
	}
}

func (s *pipelineService) lock(fileID string) func() {
	v, _ := s.locks.LoadOrStore(fileID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *pipelineService) Upload(ctx context.Context, req *models.UploadRequest) ([]models.File, error) {
	if len(req.Files) == 0 {
		return nil, utils.NewBadRequestError("No files provided")
	}
	if req.CompanionPDF != nil && len(req.Files) != 1 {
		return nil, utils.NewBadRequestError("A companion PDF can only accompany a single file")
	}

	created := make([]models.File, 0, len(req.Files))

	for _, item := range req.Files {
		if len(item.Data) == 0 {
			return nil, utils.NewBadRequestError(fmt.Sprintf("File %s is empty", item.Filename))
		}

		fileID := utils.GenerateID()
		originalPath := fmt.Sprintf("original/%s.pptx", fileID)

		if err := s.storage.Upload(ctx, originalPath, item.Data, storage.ContentTypePPTX); err != nil {
			s.logger.Error("Failed to store original", "error", err, "file_id", fileID)
			return nil, utils.NewInternalError(fmt.Sprintf("Failed to store %s", item.Filename))
		}

		file := models.File{
			ID:                  fileID,
			CompanyName:         req.CompanyName,
			OriginalFilename:    item.Filename,
			StoragePathOriginal: originalPath,
			CreatedAt:           time.Now(),
		}

		if req.CompanionPDF != nil {
			pdfPath := fmt.Sprintf("pdf/%s.pdf", fileID)
			if err := s.storage.Upload(ctx, pdfPath, req.CompanionPDF, storage.ContentTypePDF); err != nil {
				s.logger.Error("Failed to store companion PDF", "error", err, "file_id", fileID)
				return nil, utils.NewInternalError("Failed to store companion PDF")
			}
			file.StoragePathPDF = &pdfPath
		}

		if err := s.files.Create(ctx, &file); err != nil {
			s.logger.Error("Failed to create file record", "error", err, "file_id", fileID)
			// Attempt to cleanup the stored blob
			_ = s.storage.Delete(ctx, originalPath)
			return nil, utils.NewInternalError("Failed to save file record")
		}

		s.logger.Info("File uploaded", "file_id", fileID, "filename", item.Filename)
		created = append(created, file)
	}

	return created, nil
}

func (s *pipelineService) Analyze(ctx context.Context, fileID string, req *models.AnalyzeRequest) (*models.Suggestion, error) {
	unlock := s.lock(fileID)
	defer unlock()

	job, err := s.startJob(ctx, fileID, models.JobTypeAnalyze)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.runAnalyze(ctx, fileID, req)
	if err != nil {
		s.finishJob(ctx, job, err)
		return nil, err
	}

	s.finishJob(ctx, job, nil)
	return suggestion, nil
}

func (s *pipelineService) runAnalyze(ctx context.Context, fileID string, req *models.AnalyzeRequest) (*models.Suggestion, error) {
	file, err := s.getFileRecord(ctx, fileID)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = models.AnalyzeModeText
	}

	var result *analyzer.Result

	switch mode {
	case models.AnalyzeModeAttachment:
		if file.StoragePathPDF == nil {
			return nil, utils.NewBadRequestError("Attachment analysis requires a companion PDF")
		}
		pdfData, err := s.storage.Download(ctx, *file.StoragePathPDF)
		if err != nil {
			s.logger.Error("Failed to download companion PDF", "error", err, "file_id", fileID)
			return nil, utils.NewInternalError("Failed to retrieve companion PDF")
		}
		result, err = s.analyzer.AnalyzeAttachment(ctx, pdfData, req.Prompt)
		if err != nil {
			return nil, err
		}

	case models.AnalyzeModeText:
		text, err := s.analysisText(ctx, file)
		if err != nil {
			return nil, err
		}
		result, err = s.analyzer.Analyze(ctx, truncateForModel(text), req.Prompt)
		if err != nil {
			return nil, err
		}

	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("Unknown analysis mode %q", mode))
	}

	suggestion := &models.Suggestion{
		ID:             utils.GenerateID(),
		FileID:         fileID,
		ModelName:      result.ModelName,
		RawModelOutput: result.RawOutput,
		SummaryText:    result.SummaryText,
		CreatedAt:      time.Now(),
	}

	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		s.logger.Error("Failed to save suggestion", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to save analysis result")
	}

	s.logger.Info("File analyzed", "file_id", fileID, "model", result.ModelName, "mode", mode)
	return suggestion, nil
}

// analysisText prefers the companion PDF's extracted text when one exists;
// the deck flattening is the fallback.
func (s *pipelineService) analysisText(ctx context.Context, file *models.File) (string, error) {
	if file.StoragePathPDF != nil {
		pdfData, err := s.storage.Download(ctx, *file.StoragePathPDF)
		if err == nil {
			if text, err := extractor.ExtractPDF(pdfData); err == nil {
				return text, nil
			}
			s.logger.Warn("Companion PDF extraction failed, falling back to deck text", "file_id", file.ID)
		}
	}

	deckData, err := s.storage.Download(ctx, file.StoragePathOriginal)
	if err != nil {
		s.logger.Error("Failed to download original", "error", err, "file_id", file.ID)
		return "", utils.NewInternalError("Failed to retrieve original file")
	}

	pres, err := pptx.Open(deckData)
	if err != nil {
		return "", utils.NewUnprocessableError(fmt.Sprintf("Failed to read presentation: %v", err))
	}

	text := pres.ExtractText()
	if strings.TrimSpace(text) == "" {
		return "", utils.NewUnprocessableError("No text could be extracted from the presentation")
	}

	return text, nil
}

func (s *pipelineService) SaveReview(ctx context.Context, fileID string, req *models.ReviewRequest) (*models.Review, error) {
	if strings.TrimSpace(req.FinalText) == "" {
		return nil, utils.NewBadRequestError("Review text must not be empty")
	}

	if _, err := s.getFileRecord(ctx, fileID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:           utils.GenerateID(),
		FileID:       fileID,
		SuggestionID: req.SuggestionID,
		FinalText:    req.FinalText,
		EditorNotes:  req.EditorNotes,
		Status:       models.ReviewStatusDraft,
	}

	if err := s.reviews.Upsert(ctx, review); err != nil {
		s.logger.Error("Failed to save review", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to save review")
	}

	s.logger.Info("Review saved", "file_id", fileID, "review_id", review.ID)
	return review, nil
}

func (s *pipelineService) Approve(ctx context.Context, fileID string) (*models.File, error) {
	unlock := s.lock(fileID)
	defer unlock()

	job, err := s.startJob(ctx, fileID, models.JobTypeRegenerate)
	if err != nil {
		return nil, err
	}

	file, err := s.runApprove(ctx, fileID)
	if err != nil {
		s.finishJob(ctx, job, err)
		return nil, err
	}

	s.finishJob(ctx, job, nil)
	return file, nil
}

func (s *pipelineService) runApprove(ctx context.Context, fileID string) (*models.File, error) {
	file, err := s.getFileRecord(ctx, fileID)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByFileID(ctx, fileID)
	if err != nil {
		s.logger.Error("Failed to load review", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to load review")
	}
	if review == nil {
		return nil, utils.NewNotFoundError("No review found for this file")
	}

	deckData, err := s.storage.Download(ctx, file.StoragePathOriginal)
	if err != nil {
		s.logger.Error("Failed to download original", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to retrieve original file")
	}

	pres, err := pptx.Open(deckData)
	if err != nil {
		return nil, utils.NewUnprocessableError(fmt.Sprintf("Failed to read presentation: %v", err))
	}

	shape, err := pres.FindShape(pptx.PlaceholderID)
	if err != nil {
		return nil, err
	}

	frame, ok := shape.TextFrame()
	if !ok {
		return nil, pptx.ErrPlaceholderNotTextCapable
	}

	if err := render.Apply(frame, review.FinalText); err != nil {
		return nil, err
	}

	regenerated, err := pres.Save()
	if err != nil {
		return nil, utils.NewInternalError(fmt.Sprintf("Failed to serialize presentation: %v", err))
	}

	regeneratedPath := fmt.Sprintf("regenerated/%s.pptx", fileID)
	if err := s.storage.Upload(ctx, regeneratedPath, regenerated, storage.ContentTypePPTX); err != nil {
		s.logger.Error("Failed to store regenerated file", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to store regenerated file")
	}

	if err := s.files.UpdateRegeneratedPath(ctx, fileID, regeneratedPath); err != nil {
		s.logger.Error("Failed to update file record", "error", err, "file_id", fileID)
		return nil, utils.NewInternalError("Failed to update file record")
	}

	if err := s.reviews.UpdateStatus(ctx, review.ID, models.ReviewStatusApproved); err != nil {
		s.logger.Error("Failed to approve review", "error", err, "review_id", review.ID)
		return nil, utils.NewInternalError("Failed to approve review")
	}

	s.logger.Info("File regenerated", "file_id", fileID, "path", regeneratedPath)

	file.StoragePathRegenerated = &regeneratedPath
	return file, nil
}

func (s *pipelineService) GetFile(ctx context.Context, id string) (*models.FileDetail, error) {
	file, err := s.getFileRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.suggestions.LatestByFileID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load suggestion", "error", err, "file_id", id)
		return nil, utils.NewInternalError("Failed to load suggestion")
	}

	review, err := s.reviews.GetByFileID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load review", "error", err, "file_id", id)
		return nil, utils.NewInternalError("Failed to load review")
	}

	jobs, err := s.jobs.ListByFileID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to load jobs", "error", err, "file_id", id)
		return nil, utils.NewInternalError("Failed to load job history")
	}

	detail := &models.FileDetail{
		File:       *file,
		Suggestion: suggestion,
		Review:     review,
		Jobs:       jobs,
	}

	// Signing failures degrade the links, not the whole response.
	if url, err := s.storage.SignedURL(ctx, file.StoragePathOriginal, s.urlTTL); err == nil {
		detail.DownloadURLOriginal = url
	} else {
		s.logger.Warn("Failed to sign original URL", "error", err, "file_id", id)
	}
	if file.StoragePathRegenerated != nil {
		if url, err := s.storage.SignedURL(ctx, *file.StoragePathRegenerated, s.urlTTL); err == nil {
			detail.DownloadURLRegenerated = url
		} else {
			s.logger.Warn("Failed to sign regenerated URL", "error", err, "file_id", id)
		}
	}

	return detail, nil
}

func (s *pipelineService) ListFiles(ctx context.Context) ([]models.File, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list files", "error", err)
		return nil, utils.NewInternalError("Failed to list files")
	}
	return files, nil
}

func (s *pipelineService) ExportApproved(ctx context.Context) ([]byte, error) {
	rows, err := s.reviews.ListApproved(ctx)
	if err != nil {
		s.logger.Error("Failed to list approved reviews", "error", err)
		return nil, utils.NewInternalError("Failed to list approved reviews")
	}
	if len(rows) == 0 {
		return nil, utils.NewNotFoundError("No approved reviews found")
	}

	data, err := export.ApprovedReviews(rows)
	if err != nil {
		s.logger.Error("Failed to build export", "error", err)
		return nil, utils.NewInternalError("Failed to build export")
	}

	return data, nil
}

func (s *pipelineService) getFileRecord(ctx context.Context, id string) (*models.File, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get file", "error", err, "file_id", id)
		return nil, utils.NewInternalError("Failed to retrieve file")
	}
	if file == nil {
		return nil, utils.NewNotFoundError("File not found")
	}
	return file, nil
}

// startJob records the attempt as RUNNING before the operation begins; the
// row is the durable audit trail even when the operation later fails.
func (s *pipelineService) startJob(ctx context.Context, fileID, jobType string) (*models.Job, error) {
	now := time.Now()
	job := &models.Job{
		ID:        utils.GenerateID(),
		FileID:    fileID,
		Type:      jobType,
		Status:    models.JobStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create job", "error", err, "file_id", fileID, "type", jobType)
		return nil, utils.NewInternalError("Failed to create job record")
	}

	return job, nil
}

func (s *pipelineService) finishJob(ctx context.Context, job *models.Job, opErr error) {
	if opErr == nil {
		if err := s.jobs.MarkSucceeded(ctx, job.ID); err != nil {
			s.logger.Error("Failed to mark job succeeded", "error", err, "job_id", job.ID)
		}
		return
	}

	if err := s.jobs.MarkFailed(ctx, job.ID, opErr.Error()); err != nil {
		s.logger.Error("Failed to mark job failed", "error", err, "job_id", job.ID)
	}
}

func truncateForModel(text string) string {
	if len(text) <= maxAnalysisChars {
		return text
	}

	// Back off to a rune boundary so the cut never splits a multi-byte
	// character.
	cut := maxAnalysisChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + "\n\n[... Text truncated to fit context limit ...]"
}
