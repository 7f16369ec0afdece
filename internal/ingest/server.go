package ingest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pareidolia/internal/config"
	"pareidolia/internal/executor"
	"pareidolia/internal/logging"
	"pareidolia/internal/services"
	"pareidolia/internal/store"
	"pareidolia/internal/textutil"
)

// ConvertFunc runs frame extraction for an uploaded video. The result is
// informational only: upload responses do not depend on it.
type ConvertFunc func(ctx context.Context, videoPath, outputDir string) executor.Result

// Server is the mobile ingestion HTTP endpoint.
type Server struct {
	cfg     *config.Config
	store   *store.Store
	convert ConvertFunc
	logger  *slog.Logger

	listener net.Listener
	server   *http.Server
}

// New constructs the ingestion server. convert may be nil, in which case
// uploads are persisted without frame extraction.
func New(cfg *config.Config, st *store.Store, convert ConvertFunc, logger *slog.Logger) *Server {
	srv := &Server{
		cfg:     cfg,
		store:   st,
		convert: convert,
		logger:  logging.WithComponent(logger, "ingest"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/get-datasets", srv.handleGetDatasets)
	mux.HandleFunc("/get-models", srv.handleGetModels)
	mux.HandleFunc("/add-dataset", srv.handleAddDataset)
	mux.HandleFunc("/download-model-mobile", srv.handleDownloadModel)
	mux.HandleFunc("/upload-video", srv.handleUploadVideo)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Start binds the configured address and serves until the context ends.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Paths.APIBind)
	if err != nil {
		return fmt.Errorf("ingest listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ingest server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("ingest server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound address, or empty when not started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	datasets, err := s.store.ListDatasets()
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, datasets)
}

func (s *Server) handleGetModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	models, err := s.store.ListModels()
	if err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, models)
}

func (s *Server) handleAddDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		DatasetName string `json:"datasetName"`
	}
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.DatasetName) == "" {
		s.writeError(w, http.StatusBadRequest, "datasetName is required")
		return
	}

	if _, err := s.store.CreateDataset(req.DatasetName); err != nil {
		s.writeError(w, services.HTTPStatus(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"datasetName": req.DatasetName,
	})
}

func (s *Server) handleDownloadModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	modelName := strings.TrimSpace(r.URL.Query().Get("modelName"))
	if modelName == "" {
		s.writeError(w, http.StatusBadRequest, "modelName is required")
		return
	}

	modelDir := s.store.ModelPath(modelName)
	if info, err := os.Stat(modelDir); err != nil || !info.IsDir() {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("model %q not found", modelName))
		return
	}
	artifact := s.store.ArtifactPath(modelName)
	if _, err := os.Stat(artifact); err != nil {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("model %q has no trained artifact", modelName))
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", store.ArtifactFileName))
	http.ServeFile(w, r, artifact)
}

func (s *Server) handleUploadVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		FileName    string `json:"fileName"`
		FileData    string `json:"fileData"`
		DatasetName string `json:"datasetName"`
	}
	if err := s.decodeBody(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for field, value := range map[string]string{
		"fileName":    req.FileName,
		"fileData":    req.FileData,
		"datasetName": req.DatasetName,
	} {
		if strings.TrimSpace(value) == "" {
			s.writeError(w, http.StatusBadRequest, field+" is required")
			return
		}
	}

	// Client-supplied names go straight into a filesystem path, so strip any
	// directory components and unsafe characters first.
	fileName := textutil.SanitizeFileName(filepath.Base(req.FileName))
	if fileName == "" || fileName == "." || fileName == ".." {
		s.writeError(w, http.StatusBadRequest, "fileName is invalid")
		return
	}

	// Uploads to unknown datasets create them. This is part of the contract,
	// not an error path.
	if !s.store.DatasetExists(req.DatasetName) {
		if _, err := s.store.CreateDataset(req.DatasetName); err != nil {
			s.writeError(w, services.HTTPStatus(err), err.Error())
			return
		}
	}

	data, err := base64.StdEncoding.DecodeString(stripDataURLPrefix(req.FileData))
	if err != nil {
		s.writeUploadError(w, fmt.Errorf("decode video payload: %w", err))
		return
	}

	positives := s.store.PositivesDir(req.DatasetName)
	videoPath := filepath.Join(positives, fileName)
	if err := os.WriteFile(videoPath, data, 0o644); err != nil {
		s.writeUploadError(w, fmt.Errorf("write video: %w", err))
		return
	}

	// Conversion failure does not block the upload response: "upload" and
	// "convert" are different reliability tiers.
	if s.convert != nil {
		result := s.convert(r.Context(), videoPath, positives)
		if !result.Success {
			s.logger.Warn("frame extraction failed for upload",
				logging.String(logging.FieldDataset, req.DatasetName),
				logging.String("file", fileName),
				logging.String("error", result.Error))
		}
	}

	if err := os.Remove(videoPath); err != nil {
		s.logger.Warn("failed to remove uploaded video",
			logging.String("path", videoPath),
			logging.Error(err))
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"fileName":    fileName,
		"datasetName": req.DatasetName,
		"fileSize":    len(data),
	})
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes())
	return json.NewDecoder(r.Body).Decode(dst)
}

func stripDataURLPrefix(payload string) string {
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			return payload[idx+1:]
		}
	}
	return payload
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "upload failed",
		"message": err.Error(),
	})
}
