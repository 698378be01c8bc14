package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wenyin0054/fundora-app-sub001/internal/pdf"
	"github.com/wenyin0054/fundora-app-sub001/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, _, _ := version.Info()
	response := HealthResponse{
		Status:  "healthy",
		Version: v,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding health response", "error", err)
	}
}

// scanHandler accepts a multipart receipt upload, runs the pipeline, and
// returns the outcome as JSON.
func (s *Server) scanHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeError(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeError(w, "No image file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	imagePath, cleanup, err := s.spoolUpload(file, header.Filename)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer cleanup()

	outcome, err := s.scanner.ProcessReceipt(r.Context(), imagePath)
	if err != nil {
		scanRequestsTotal.WithLabelValues("error").Inc()
		s.writeError(w, fmt.Sprintf("Scan failed: %v", err), http.StatusInternalServerError)
		return
	}
	scanRequestsTotal.WithLabelValues("ok").Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		slog.Error("Error encoding scan response", "error", err)
	}
}

// spoolUpload writes an uploaded file to a temp location the pipeline can
// read, unwrapping PDF receipts into their first embedded image.
func (s *Server) spoolUpload(file io.Reader, filename string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "receipt-upload-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	spooled := filepath.Join(dir, "upload"+ext)
	out, err := os.Create(spooled) //nolint:gosec // G304: path is under our own temp dir
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := out.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	if pdf.IsPDF(spooled) {
		imagePath, err := pdf.FirstImagePath(spooled, dir)
		if err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to extract image from PDF: %w", err)
		}
		return imagePath, cleanup, nil
	}
	return spooled, cleanup, nil
}

func (s *Server) writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}
