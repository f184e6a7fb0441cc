package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/esgfactsheet/factsheet-ai/internal/analyzer"
	"github.com/esgfactsheet/factsheet-ai/internal/models"
	"github.com/esgfactsheet/factsheet-ai/internal/pptx"
	"github.com/esgfactsheet/factsheet-ai/internal/services"
	"github.com/esgfactsheet/factsheet-ai/internal/utils"
	"github.com/gorilla/mux"
)

const (
	// MaxUploadSize bounds a whole multipart request.
	MaxUploadSize = 50 << 20 // 50MB
)

type FileHandler struct {
	service services.PipelineService
	logger  *utils.Logger
}

func NewFileHandler(service services.PipelineService, logger *utils.Logger) *FileHandler {
	return &FileHandler{
		service: service,
		logger:  logger,
	}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > MaxUploadSize {
		h.respondError(w, utils.NewBadRequestError("Upload exceeds 50MB limit"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewBadRequestError("Upload exceeds 50MB limit"))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		h.respondError(w, utils.NewBadRequestError("No files provided"))
		return
	}

	req := &models.UploadRequest{}

	if companyName := strings.TrimSpace(r.FormValue("company_name")); companyName != "" {
		req.CompanyName = &companyName
	}

	for _, header := range fileHeaders {
		if !strings.EqualFold(filepath.Ext(header.Filename), ".pptx") {
			h.respondError(w, utils.NewBadRequestError(fmt.Sprintf("File %s is not a PPTX", header.Filename)))
			return
		}

		data, err := readFormFile(header)
		if err != nil {
			h.respondError(w, utils.NewInternalError("Failed to read uploaded file"))
			return
		}

		req.Files = append(req.Files, models.UploadItem{Filename: header.Filename, Data: data})
	}

	if pdfHeaders := r.MultipartForm.File["pdf"]; len(pdfHeaders) > 0 {
		if !strings.EqualFold(filepath.Ext(pdfHeaders[0].Filename), ".pdf") {
			h.respondError(w, utils.NewBadRequestError("Companion file must be a PDF"))
			return
		}
		data, err := readFormFile(pdfHeaders[0])
		if err != nil {
			h.respondError(w, utils.NewInternalError("Failed to read companion PDF"))
			return
		}
		req.CompanionPDF = data
	}

	files, err := h.service.Upload(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, files)
}

func (h *FileHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("File ID is required"))
		return
	}

	req := &models.AnalyzeRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			h.respondError(w, utils.NewBadRequestError("Invalid request body"))
			return
		}
	}

	suggestion, err := h.service.Analyze(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, suggestion)
}

func (h *FileHandler) SaveReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("File ID is required"))
		return
	}

	req := &models.ReviewRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid request body"))
		return
	}

	review, err := h.service.SaveReview(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, review)
}

func (h *FileHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("File ID is required"))
		return
	}

	file, err := h.service.Approve(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, file)
}

func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.respondError(w, utils.NewBadRequestError("File ID is required"))
		return
	}

	detail, err := h.service.GetFile(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, detail)
}

func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, files)
}

func (h *FileHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportApproved(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	filename := fmt.Sprintf("esg_summaries_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("Failed to write export response", "error", err)
	}
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

func (h *FileHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *FileHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *utils.AppError
	switch {
	case errors.As(err, &appErr):
		status = appErr.StatusCode
		message = appErr.Message
	case errors.Is(err, pptx.ErrPlaceholderNotFound),
		errors.Is(err, pptx.ErrPlaceholderNotTextCapable):
		// Template problems are user-actionable.
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, analyzer.ErrTransport),
		errors.Is(err, analyzer.ErrMalformedEnvelope),
		errors.Is(err, analyzer.ErrMalformedPayload),
		errors.Is(err, analyzer.ErrProcessingTimeout),
		errors.Is(err, analyzer.ErrProcessingFailed):
		// Remote analysis issues are retryable by re-invoking analyze.
		status = http.StatusBadGateway
		message = err.Error()
	}

	h.logger.Error("Request error", "status", status, "error", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
