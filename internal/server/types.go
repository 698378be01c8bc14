package server

import (
	"context"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
)

// scannerInterface defines the methods the server needs from a pipeline.
type scannerInterface interface {
	ProcessReceipt(ctx context.Context, imagePath string) (*pipeline.Outcome, error)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	scanner     scannerInterface
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
