package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgfactsheet/factsheet-ai/internal/analyzer"
	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/esgfactsheet/factsheet-ai/internal/pptx"
	"github.com/esgfactsheet/factsheet-ai/internal/testutil"
	"github.com/esgfactsheet/factsheet-ai/internal/utils"
)

// --- in-memory fakes ---

type fakeFileRepo struct {
	mu    sync.Mutex
	files map[string]models.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]models.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	file, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	return &file, nil
}

func (r *fakeFileRepo) List(_ context.Context) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.File, 0, len(r.files))
	for _, file := range r.files {
		out = append(out, file)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeFileRepo) UpdateRegeneratedPath(_ context.Context, id, storagePath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file := r.files[id]
	file.StoragePathRegenerated = &storagePath
	r.files[id] = file
	return nil
}

type fakeSuggestionRepo struct {
	mu   sync.Mutex
	rows []models.Suggestion
}

func (r *fakeSuggestionRepo) Create(_ context.Context, suggestion *models.Suggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *suggestion)
	return nil
}

func (r *fakeSuggestionRepo) LatestByFileID(_ context.Context, fileID string) (*models.Suggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].FileID == fileID {
			row := r.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

type fakeReviewRepo struct {
	mu   sync.Mutex
	rows map[string]models.Review // keyed by file ID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{rows: make(map[string]models.Review)}
}

func (r *fakeReviewRepo) Upsert(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.rows[review.FileID]; ok {
		review.ID = existing.ID
		review.CreatedAt = existing.CreatedAt
	} else {
		review.CreatedAt = time.Now()
	}
	review.UpdatedAt = time.Now()
	r.rows[review.FileID] = *review
	return nil
}

func (r *fakeReviewRepo) GetByFileID(_ context.Context, fileID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.rows[fileID]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (r *fakeReviewRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for fileID, review := range r.rows {
		if review.ID == id {
			review.Status = status
			review.UpdatedAt = time.Now()
			r.rows[fileID] = review
			return nil
		}
	}
	return fmt.Errorf("review %s not found", id)
}

func (r *fakeReviewRepo) ListApproved(_ context.Context) ([]models.ApprovedReviewRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ApprovedReviewRow
	for _, review := range r.rows {
		if review.Status == models.ReviewStatusApproved {
			out = append(out, models.ApprovedReviewRow{
				FileID:    review.FileID,
				FinalText: review.FinalText,
				CreatedAt: review.CreatedAt,
			})
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	rows []models.Job
}

func (r *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *job)
	return nil
}

func (r *fakeJobRepo) markTerminal(id, status string, errMsg *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		// Terminal states are final; only a RUNNING row may flip.
		if r.rows[i].ID == id && r.rows[i].Status == models.JobStatusRunning {
			r.rows[i].Status = status
			r.rows[i].Error = errMsg
			r.rows[i].UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeJobRepo) MarkSucceeded(_ context.Context, id string) error {
	return r.markTerminal(id, models.JobStatusSucceeded, nil)
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, id, errMsg string) error {
	return r.markTerminal(id, models.JobStatusFailed, &errMsg)
}

func (r *fakeJobRepo) ListByFileID(_ context.Context, fileID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.rows {
		if job.FileID == fileID {
			out = append(out, job)
		}
	}
	return out, nil
}

type fakeStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (s *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return data, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *fakeStorage) SignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

type stubAnalyzer struct {
	result    *analyzer.Result
	err       error
	gotText   string
	gotPrompt string
}

func (a *stubAnalyzer) Analyze(_ context.Context, text, prompt string) (*analyzer.Result, error) {
	a.gotText = text
	a.gotPrompt = prompt
	return a.result, a.err
}

func (a *stubAnalyzer) AnalyzeAttachment(_ context.Context, _ []byte, prompt string) (*analyzer.Result, error) {
	a.gotPrompt = prompt
	return a.result, a.err
}

// --- harness ---

type pipelineFixture struct {
	service  PipelineService
	files    *fakeFileRepo
	reviews  *fakeReviewRepo
	jobs     *fakeJobRepo
	storage  *fakeStorage
	analyzer *stubAnalyzer
	sugg     *fakeSuggestionRepo
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		files:    newFakeFileRepo(),
		reviews:  newFakeReviewRepo(),
		jobs:     &fakeJobRepo{},
		storage:  newFakeStorage(),
		sugg:     &fakeSuggestionRepo{},
		analyzer: &stubAnalyzer{},
	}
	f.analyzer.result = &analyzer.Result{
		ModelName:   "gemini-1.5-flash-latest",
		SummaryText: "**Strengths**\n- strong governance",
		RawOutput:   json.RawMessage(`{"strengths":["strong governance"],"weaknesses":[],"action_plan":[]}`),
	}

	f.service = NewPipelineService(
		f.files, f.sugg, f.reviews, f.jobs,
		f.storage, f.analyzer,
		utils.NewLogger("error"),
		time.Hour,
	)
	return f
}

func deckWithPlaceholder() []byte {
	return testutil.BuildPPTX(testutil.SlideSpec{Shapes: []testutil.ShapeSpec{
		{Name: "Title 1", Paragraphs: []string{"Acme Corp"}},
		{Name: "AI_SUMMARY", Paragraphs: []string{"pending"}},
	}})
}

func (f *pipelineFixture) upload(t *testing.T, deck []byte) models.File {
	t.Helper()
	files, err := f.service.Upload(context.Background(), &models.UploadRequest{
		Files: []models.UploadItem{{Filename: "acme.pptx", Data: deck}},
	})
	require.NoError(t, err)
	require.Len(t, files, 1)
	return files[0]
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.StatusCode
}

// --- tests ---

func TestUploadStoresBlobAndRecord(t *testing.T) {
	f := newPipelineFixture(t)

	file := f.upload(t, deckWithPlaceholder())

	assert.Equal(t, "original/"+file.ID+".pptx", file.StoragePathOriginal)
	_, err := f.storage.Download(context.Background(), file.StoragePathOriginal)
	assert.NoError(t, err)

	saved, err := f.files.GetByID(context.Background(), file.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "acme.pptx", saved.OriginalFilename)
}

func TestUploadCompanionPDFNeedsSingleFile(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.service.Upload(context.Background(), &models.UploadRequest{
		Files: []models.UploadItem{
			{Filename: "a.pptx", Data: []byte("x")},
			{Filename: "b.pptx", Data: []byte("y")},
		},
		CompanionPDF: []byte("%PDF-1.4"),
	})
	assert.Equal(t, 400, statusCode(t, err))
}

func TestUploadEmptyRequest(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.service.Upload(context.Background(), &models.UploadRequest{})
	assert.Equal(t, 400, statusCode(t, err))
}

func TestAnalyzeTextMode(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	suggestion, err := f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{Prompt: "focus on emissions"})
	require.NoError(t, err)

	// The flattened deck text reaches the model together with the prompt.
	assert.Contains(t, f.analyzer.gotText, "Acme Corp")
	assert.Equal(t, "focus on emissions", f.analyzer.gotPrompt)

	assert.Equal(t, file.ID, suggestion.FileID)
	assert.Equal(t, "gemini-1.5-flash-latest", suggestion.ModelName)
	assert.NotEmpty(t, suggestion.SummaryText)

	latest, err := f.sugg.LatestByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, suggestion.ID, latest.ID)

	jobs, err := f.jobs.ListByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobTypeAnalyze, jobs[0].Type)
	assert.Equal(t, models.JobStatusSucceeded, jobs[0].Status)
}

func TestAnalyzeFailureRecordsFailedJob(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	f.analyzer.result = nil
	f.analyzer.err = fmt.Errorf("%w: candidate blocked", analyzer.ErrProcessingFailed)

	_, err := f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{})
	assert.ErrorIs(t, err, analyzer.ErrProcessingFailed)

	// The attempt leaves a failed audit row and nothing else.
	jobs, _ := f.jobs.ListByFileID(context.Background(), file.ID)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
	require.NotNil(t, jobs[0].Error)
	assert.Contains(t, *jobs[0].Error, "candidate blocked")

	latest, err := f.sugg.LatestByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestAnalyzeUnknownFile(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.service.Analyze(context.Background(), "missing", &models.AnalyzeRequest{})
	assert.Equal(t, 404, statusCode(t, err))

	// Even a not-found attempt is audited.
	jobs, _ := f.jobs.ListByFileID(context.Background(), "missing")
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
}

func TestAnalyzeAttachmentModeRequiresPDF(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{Mode: models.AnalyzeModeAttachment})
	assert.Equal(t, 400, statusCode(t, err))
}

func TestAnalyzeUnknownMode(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{Mode: "voice"})
	assert.Equal(t, 400, statusCode(t, err))
}

func TestSaveReviewRejectsEmptyText(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "   "})
	assert.Equal(t, 400, statusCode(t, err))
}

func TestSaveReviewUpsertsInPlace(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	first, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "draft one"})
	require.NoError(t, err)
	second, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "draft two"})
	require.NoError(t, err)

	// Same row, updated text, back in draft.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.ReviewStatusDraft, second.Status)

	stored, err := f.reviews.GetByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "draft two", stored.FinalText)
}

func TestApproveWithoutReview(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.Approve(context.Background(), file.ID)
	assert.Equal(t, 404, statusCode(t, err))

	saved, _ := f.files.GetByID(context.Background(), file.ID)
	assert.Nil(t, saved.StoragePathRegenerated)

	jobs, _ := f.jobs.ListByFileID(context.Background(), file.ID)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobTypeRegenerate, jobs[0].Type)
	assert.Equal(t, models.JobStatusFailed, jobs[0].Status)
}

func TestApproveRegeneratesDeck(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	finalText := "## Strengths\n\nStrong governance.\n\n- Weak disclosure\n"
	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: finalText})
	require.NoError(t, err)

	approved, err := f.service.Approve(context.Background(), file.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.StoragePathRegenerated)
	assert.Equal(t, "regenerated/"+file.ID+".pptx", *approved.StoragePathRegenerated)

	// The stored deck carries the approved text in the placeholder and the
	// rest of the slide untouched.
	regenerated, err := f.storage.Download(context.Background(), *approved.StoragePathRegenerated)
	require.NoError(t, err)

	pres, err := pptx.Open(regenerated)
	require.NoError(t, err)

	text := pres.ExtractText()
	assert.Contains(t, text, "Strengths")
	assert.Contains(t, text, "Strong governance.")
	assert.Contains(t, text, "• Weak disclosure")
	assert.Contains(t, text, "Acme Corp")
	assert.NotContains(t, text, "pending")

	review, err := f.reviews.GetByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, review.Status)

	jobs, _ := f.jobs.ListByFileID(context.Background(), file.ID)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusSucceeded, jobs[0].Status)
}

func TestApprovePlainTextBecomesOneParagraphPerBlock(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{
		FinalText: "Strong governance.\n\nWeak disclosure.",
	})
	require.NoError(t, err)

	approved, err := f.service.Approve(context.Background(), file.ID)
	require.NoError(t, err)

	regenerated, err := f.storage.Download(context.Background(), *approved.StoragePathRegenerated)
	require.NoError(t, err)
	pres, err := pptx.Open(regenerated)
	require.NoError(t, err)

	shape, err := pres.FindShape(pptx.PlaceholderID)
	require.NoError(t, err)
	tf, ok := shape.TextFrame()
	require.True(t, ok)

	paragraphs, err := tf.Paragraphs()
	require.NoError(t, err)
	require.Len(t, paragraphs, 2)
	require.Len(t, paragraphs[0].Runs, 1)
	require.Len(t, paragraphs[1].Runs, 1)
	assert.Equal(t, "Strong governance.", paragraphs[0].Runs[0].Text)
	assert.Equal(t, "Weak disclosure.", paragraphs[1].Runs[0].Text)
}

func TestApprovePlaceholderMissing(t *testing.T) {
	f := newPipelineFixture(t)

	deck := testutil.BuildPPTX(testutil.SlideSpec{Shapes: []testutil.ShapeSpec{
		{Name: "Title 1", Paragraphs: []string{"no placeholder"}},
	}})
	file := f.upload(t, deck)

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "text"})
	require.NoError(t, err)

	_, err = f.service.Approve(context.Background(), file.ID)
	assert.ErrorIs(t, err, pptx.ErrPlaceholderNotFound)

	// Review stays a draft and no regenerated pointer appears.
	review, _ := f.reviews.GetByFileID(context.Background(), file.ID)
	assert.Equal(t, models.ReviewStatusDraft, review.Status)
	saved, _ := f.files.GetByID(context.Background(), file.ID)
	assert.Nil(t, saved.StoragePathRegenerated)
}

func TestApprovePlaceholderOnPicture(t *testing.T) {
	f := newPipelineFixture(t)

	deck := testutil.BuildPPTX(testutil.SlideSpec{Shapes: []testutil.ShapeSpec{
		{Name: "AI_SUMMARY", Picture: true},
	}})
	file := f.upload(t, deck)

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "text"})
	require.NoError(t, err)

	_, err = f.service.Approve(context.Background(), file.ID)
	assert.ErrorIs(t, err, pptx.ErrPlaceholderNotTextCapable)
}

func TestApproveIsRepeatable(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "first version"})
	require.NoError(t, err)
	_, err = f.service.Approve(context.Background(), file.ID)
	require.NoError(t, err)

	// A later edit and re-approval replaces the regenerated deck.
	_, err = f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "second version"})
	require.NoError(t, err)
	approved, err := f.service.Approve(context.Background(), file.ID)
	require.NoError(t, err)

	regenerated, err := f.storage.Download(context.Background(), *approved.StoragePathRegenerated)
	require.NoError(t, err)
	pres, err := pptx.Open(regenerated)
	require.NoError(t, err)
	text := pres.ExtractText()
	assert.Contains(t, text, "second version")
	assert.NotContains(t, text, "first version")
}

func TestGetFileDetail(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{})
	require.NoError(t, err)

	detail, err := f.service.GetFile(context.Background(), file.ID)
	require.NoError(t, err)

	assert.Equal(t, file.ID, detail.File.ID)
	require.NotNil(t, detail.Suggestion)
	assert.Nil(t, detail.Review)
	require.Len(t, detail.Jobs, 1)
	assert.Equal(t, "https://signed.example/"+file.StoragePathOriginal, detail.DownloadURLOriginal)
	assert.Empty(t, detail.DownloadURLRegenerated)
}

func TestGetFileNotFound(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.service.GetFile(context.Background(), "missing")
	assert.Equal(t, 404, statusCode(t, err))
}

func TestExportApprovedEmpty(t *testing.T) {
	f := newPipelineFixture(t)

	_, err := f.service.ExportApproved(context.Background())
	assert.Equal(t, 404, statusCode(t, err))
}

func TestExportApprovedProducesWorkbook(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "approved text"})
	require.NoError(t, err)
	_, err = f.service.Approve(context.Background(), file.ID)
	require.NoError(t, err)

	data, err := f.service.ExportApproved(context.Background())
	require.NoError(t, err)
	// XLSX is a ZIP container.
	assert.True(t, strings.HasPrefix(string(data), "PK"), "export should be a ZIP-based workbook")
}

func TestTruncateForModel(t *testing.T) {
	short := "deck text"
	assert.Equal(t, short, truncateForModel(short))

	long := strings.Repeat("x", maxAnalysisChars+10)
	truncated := truncateForModel(long)
	assert.Less(t, len(truncated), len(long)+100)
	assert.Contains(t, truncated, "truncated")
}

func TestTruncateForModelKeepsRunesWhole(t *testing.T) {
	// Place a two-byte rune straddling the cut so a byte slice would split it.
	long := strings.Repeat("x", maxAnalysisChars-1) + "é" + strings.Repeat("y", 50)

	truncated := truncateForModel(long)
	assert.True(t, utf8.ValidString(truncated))
	assert.NotContains(t, truncated, "é")
	assert.Contains(t, truncated, "truncated")
}

func TestConcurrentAnalyzeAndApproveSerialize(t *testing.T) {
	f := newPipelineFixture(t)
	file := f.upload(t, deckWithPlaceholder())

	_, err := f.service.SaveReview(context.Background(), file.ID, &models.ReviewRequest{FinalText: "text"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.service.Analyze(context.Background(), file.ID, &models.AnalyzeRequest{})
			_, _ = f.service.Approve(context.Background(), file.ID)
		}()
	}
	wg.Wait()

	// Every attempt reached a terminal status.
	jobs, err := f.jobs.ListByFileID(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 8)
	for _, job := range jobs {
		assert.NotEqual(t, models.JobStatusRunning, job.Status)
	}
}
