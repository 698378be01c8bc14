package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
	"github.com/wenyin0054/fundora-app-sub001/internal/recognize"
)

type stubScanner struct {
	outcome  *pipeline.Outcome
	err      error
	lastPath string
}

func (s *stubScanner) ProcessReceipt(_ context.Context, imagePath string) (*pipeline.Outcome, error) {
	s.lastPath = imagePath
	return s.outcome, s.err
}

func sampleOutcome() *pipeline.Outcome {
	return &pipeline.Outcome{
		Success:      true,
		MerchantName: "RESTORAN MAKMUR",
		TotalAmount:  "11.00",
		Confidence:   90,
		Source:       recognize.SourceLocal,
	}
}

func newTestServer(scanner scannerInterface) *Server {
	return New(scanner, Config{CORSOrigin: "*", MaxUploadMB: 50, TimeoutSec: 120})
}

func multipartImageBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScanHandler(t *testing.T) {
	scanner := &stubScanner{outcome: sampleOutcome()}
	srv := newTestServer(scanner)

	body, contentType := multipartImageBody(t, "image", "receipt.jpg", []byte("fake-jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, scanner.lastPath)

	var outcome pipeline.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.True(t, outcome.Success)
	assert.Equal(t, "RESTORAN MAKMUR", outcome.MerchantName)
	assert.Equal(t, "11.00", outcome.TotalAmount)
}

func TestScanHandler_MissingImageField(t *testing.T) {
	srv := newTestServer(&stubScanner{outcome: sampleOutcome()})

	body, contentType := multipartImageBody(t, "photo", "receipt.jpg", []byte("fake-jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusBadRequest, errResp.Code)
	assert.Contains(t, errResp.Error, "No image file")
}

func TestScanHandler_ScannerError(t *testing.T) {
	srv := newTestServer(&stubScanner{err: errors.New("pipeline exploded")})

	body, contentType := multipartImageBody(t, "image", "receipt.jpg", []byte("fake-jpeg"))
	req := httptest.NewRequest(http.MethodPost, "/scan", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScanHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodGet, "/scan", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestScanHandler_CORSPreflight(t *testing.T) {
	srv := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodOptions, "/scan", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubScanner{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
