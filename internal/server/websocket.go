package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement happens at the CORS layer for the REST API;
		// deployments wanting stricter websocket policies front this with a
		// proxy.
		return true
	},
}

// streamScanner is the optional capability for per-scan progress streaming.
type streamScanner interface {
	ProcessReceiptWithProgress(ctx context.Context, imagePath string, progress pipeline.ProgressFunc) (*pipeline.Outcome, error)
}

// StreamRequest is the single message a client sends on /scan/stream.
type StreamRequest struct {
	Filename string `json:"filename"`
	Image    string `json:"image"` // base64-encoded image bytes
}

// StreamMessage is emitted for every stage transition and once on completion.
type StreamMessage struct {
	Type   string            `json:"type"` // "stage", "completed", "error"
	Stage  string            `json:"stage,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Result *pipeline.Outcome `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// scanStreamHandler upgrades to a WebSocket, reads one scan request, and
// streams stage events while the pipeline runs.
func (s *Server) scanStreamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()
	slog.Info("Scan stream connection established", "remote_addr", r.RemoteAddr)

	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	var req StreamRequest
	if err := conn.ReadJSON(&req); err != nil {
		writeStreamMessage(conn, StreamMessage{Type: "error", Error: "invalid request: " + err.Error()})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		writeStreamMessage(conn, StreamMessage{Type: "error", Error: "image is not valid base64"})
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = "upload.jpg"
	}
	imagePath, cleanup, err := s.spoolUpload(bytes.NewReader(data), filename)
	if err != nil {
		writeStreamMessage(conn, StreamMessage{Type: "error", Error: err.Error()})
		return
	}
	defer cleanup()

	progress := func(stage pipeline.Stage, detail string) {
		writeStreamMessage(conn, StreamMessage{Type: "stage", Stage: string(stage), Detail: detail})
	}

	var outcome *pipeline.Outcome
	if streamer, ok := s.scanner.(streamScanner); ok {
		outcome, err = streamer.ProcessReceiptWithProgress(r.Context(), imagePath, progress)
	} else {
		outcome, err = s.scanner.ProcessReceipt(r.Context(), imagePath)
	}
	if err != nil {
		writeStreamMessage(conn, StreamMessage{Type: "error", Error: err.Error()})
		return
	}

	writeStreamMessage(conn, StreamMessage{Type: "completed", Result: outcome})
}

func writeStreamMessage(conn *websocket.Conn, msg StreamMessage) {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Debug("Failed to write stream message", "error", err)
	}
}
