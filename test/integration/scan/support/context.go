// Package support provides the godog test context and step definitions for
// the receipt scan integration suite.
package support

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
	"github.com/wenyin0054/fundora-app-sub001/internal/recognize"
)

// scriptedRecognizer is a stand-in for the on-device text recognizer. It
// returns a fixed text with one block per line, or a scripted error.
type scriptedRecognizer struct {
	text string
	err  error
}

func (r *scriptedRecognizer) Recognize(_ context.Context, _ string) (string, []recognize.Block, error) {
	if r.err != nil {
		return "", nil, r.err
	}
	var blocks []recognize.Block
	for _, line := range strings.Split(r.text, "\n") {
		if strings.TrimSpace(line) != "" {
			blocks = append(blocks, recognize.Block{Text: line})
		}
	}
	return r.text, blocks, nil
}

// TestContext carries per-scenario state: the scripted recognizer, the fake
// cloud endpoint, and the last scan outcome.
type TestContext struct {
	recognizer *scriptedRecognizer

	cloudSrv   *httptest.Server
	cloudText  string
	cloudCalls atomic.Int64
	cloudDown  bool

	cloudEnabled bool
	imagePath    string
	outcome      *pipeline.Outcome

	tempDirs []string
}

// NewTestContext creates a fresh context with a running fake cloud endpoint.
func NewTestContext() (*TestContext, error) {
	tc := &TestContext{
		recognizer:   &scriptedRecognizer{err: errors.New("no scripted recognition")},
		cloudEnabled: true,
	}
	tc.cloudSrv = httptest.NewServer(http.HandlerFunc(tc.serveCloud))
	return tc, nil
}

// serveCloud mimics the prediction endpoint with the scripted page text.
func (tc *TestContext) serveCloud(w http.ResponseWriter, _ *http.Request) {
	tc.cloudCalls.Add(1)
	if tc.cloudDown {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{}`))
		return
	}
	body := map[string]any{
		"document": map[string]any{
			"inference": map[string]any{
				"pages": []map[string]any{
					{"prediction": map[string]any{"ocr_text": tc.cloudText}},
				},
			},
		},
	}
	writeJSON(w, body)
}

// buildPipeline assembles a pipeline wired to the scripted recognizer and
// the fake cloud endpoint.
func (tc *TestContext) buildPipeline() (*pipeline.Pipeline, error) {
	dir, err := os.MkdirTemp("", "scan-bdd-cache-*")
	if err != nil {
		return nil, err
	}
	tc.tempDirs = append(tc.tempDirs, dir)

	return pipeline.NewBuilder().
		WithRecognizer(tc.recognizer).
		WithCloud(recognize.CloudConfig{Endpoint: tc.cloudSrv.URL, APIKey: "test-key"}).
		WithCloudEnabled(tc.cloudEnabled).
		WithHTTPClient(tc.cloudSrv.Client()).
		WithCacheDir(dir).
		Build()
}

// Cleanup tears down the fake cloud server and scenario temp dirs.
func (tc *TestContext) Cleanup() error {
	if tc.cloudSrv != nil {
		tc.cloudSrv.Close()
	}
	var firstErr error
	for _, dir := range tc.tempDirs {
		if err := os.RemoveAll(dir); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
