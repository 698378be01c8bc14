package server

import (
	"context"
	"encoding/base64"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wenyin0054/fundora-app-sub001/internal/pipeline"
)

type stubStreamScanner struct {
	stubScanner
	stages []pipeline.Stage
}

func (s *stubStreamScanner) ProcessReceiptWithProgress(ctx context.Context, imagePath string, progress pipeline.ProgressFunc) (*pipeline.Outcome, error) {
	for _, stage := range s.stages {
		progress(stage, "")
	}
	return s.ProcessReceipt(ctx, imagePath)
}

func dialStream(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/scan/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestScanStream(t *testing.T) {
	scanner := &stubStreamScanner{
		stubScanner: stubScanner{outcome: sampleOutcome()},
		stages:      []pipeline.Stage{pipeline.StagePreprocess, pipeline.StageLocal, pipeline.StageFinalize},
	}
	conn := dialStream(t, newTestServer(scanner))

	req := StreamRequest{
		Filename: "receipt.jpg",
		Image:    base64.StdEncoding.EncodeToString([]byte("fake-jpeg")),
	}
	require.NoError(t, conn.WriteJSON(req))

	var got []StreamMessage
	for {
		var msg StreamMessage
		require.NoError(t, conn.ReadJSON(&msg))
		got = append(got, msg)
		if msg.Type != "stage" {
			break
		}
	}

	require.Len(t, got, 4)
	assert.Equal(t, "preprocess", got[0].Stage)
	assert.Equal(t, "local", got[1].Stage)
	assert.Equal(t, "finalize", got[2].Stage)

	final := got[3]
	assert.Equal(t, "completed", final.Type)
	require.NotNil(t, final.Result)
	assert.Equal(t, "RESTORAN MAKMUR", final.Result.MerchantName)
}

func TestScanStream_InvalidBase64(t *testing.T) {
	conn := dialStream(t, newTestServer(&stubStreamScanner{}))

	require.NoError(t, conn.WriteJSON(StreamRequest{Image: "not base64 at all!!!"}))

	var msg StreamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "base64")
}
