package router

import (
	"net/http"

	"github.com/esgfactsheet/factsheet-ai/internal/handlers"
	"github.com/esgfactsheet/factsheet-ai/internal/middleware"
	"github.com/esgfactsheet/factsheet-ai/internal/services"
	"github.com/esgfactsheet/factsheet-ai/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(pipeline services.PipelineService, logger *utils.Logger, corsOrigin string) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigin))
	r.Use(middleware.Recovery(logger))

	fileHandler := handlers.NewFileHandler(pipeline, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Preflight requests need a matching route for the middleware chain to
	// run; the CORS middleware answers them before this handler is reached.
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true,"service":"esg-factsheet-ai"}`))
	}).Methods(http.MethodGet)

	// Pipeline endpoints
	api.HandleFunc("/upload", fileHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/analyze/{id}", fileHandler.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/review/{id}", fileHandler.SaveReview).Methods(http.MethodPost)
	api.HandleFunc("/approve/{id}", fileHandler.Approve).Methods(http.MethodPost)
	api.HandleFunc("/file/{id}", fileHandler.GetFile).Methods(http.MethodGet)
	api.HandleFunc("/files", fileHandler.ListFiles).Methods(http.MethodGet)
	api.HandleFunc("/export/excel", fileHandler.ExportExcel).Methods(http.MethodGet)

	return r
}
