package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// CloudConfig holds the remote recognition endpoint settings.
type CloudConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	APIKey   string `mapstructure:"api_key" yaml:"api_key" json:"api_key"`
}

// Validate checks that the cloud adapter can be constructed.
func (c CloudConfig) Validate() error {
	if c.Endpoint == "" {
		return errors.New("cloud endpoint must not be empty")
	}
	return nil
}

// predictionRequest is the wire body sent to the recognition endpoint.
// Server-side automatic cropping is always requested.
type predictionRequest struct {
	Document string `json:"document"`
	Format   string `json:"format"`
	Cropper  bool   `json:"cropper"`
}

// predictionResponse is the expected response schema, decoded once at the
// boundary. All nesting below document is optional on the wire; a missing
// document node means the request failed.
type predictionResponse struct {
	Document *struct {
		Inference struct {
			Pages []struct {
				Prediction struct {
					OCRText string `json:"ocr_text"`
				} `json:"prediction"`
				Extras *struct {
					RawText string `json:"raw_text"`
				} `json:"extras"`
			} `json:"pages"`
		} `json:"inference"`
	} `json:"document"`
}

// text returns the recognized text, preferring the per-page ocr_text field
// and falling back to the raw_text extra.
func (r *predictionResponse) text() string {
	var parts []string
	for _, page := range r.Document.Inference.Pages {
		switch {
		case page.Prediction.OCRText != "":
			parts = append(parts, page.Prediction.OCRText)
		case page.Extras != nil && page.Extras.RawText != "":
			parts = append(parts, page.Extras.RawText)
		}
	}
	return strings.Join(parts, "\n")
}

// Cloud adapts the remote receipt-recognition service to the uniform Result
// shape. A single synchronous request is issued per call; no retry is
// performed and no timeout is imposed beyond what the injected client
// carries.
type Cloud struct {
	cfg    CloudConfig
	client *http.Client
}

// NewCloud builds a cloud recognition adapter. A nil client falls back to a
// default client without a timeout; hosts wanting one inject their own.
func NewCloud(cfg CloudConfig, client *http.Client) (*Cloud, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cloud config: %w", err)
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Cloud{cfg: cfg, client: client}, nil
}

// encodeDocument turns an image reference into the base64 payload the
// endpoint expects. Accepted inputs are a readable local file, a data: URI,
// or already-encoded base64 data; anything else is rejected.
func encodeDocument(ref string) (string, error) {
	if ref == "" {
		return "", errors.New("empty image reference")
	}
	if strings.HasPrefix(ref, "data:") {
		if i := strings.Index(ref, ","); i >= 0 {
			return ref[i+1:], nil
		}
		return "", errors.New("malformed data URI")
	}
	path := strings.TrimPrefix(ref, "file://")
	if _, err := os.Stat(path); err == nil {
		data, readErr := os.ReadFile(path) //nolint:gosec // G304: user-provided image path is expected
		if readErr != nil {
			return "", fmt.Errorf("failed to read image file: %w", readErr)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	}
	if _, err := base64.StdEncoding.DecodeString(ref); err == nil {
		return ref, nil
	}
	return "", errors.New("input is neither a local file reference nor encoded image data")
}

// Recognize sends the encoded image to the prediction endpoint and maps the
// response into a Result. All failures are captured as a non-success Result;
// this method never returns an error to the caller.
func (c *Cloud) Recognize(ctx context.Context, imageRef string) Result {
	fail := func(reason string) Result {
		slog.Debug("Cloud recognition failed", "reason", reason)
		return Result{Source: SourceCloud, FailureReason: reason}
	}

	doc, err := encodeDocument(imageRef)
	if err != nil {
		return fail(err.Error())
	}

	body, err := json.Marshal(predictionRequest{Document: doc, Format: "native", Cropper: true})
	if err != nil {
		return fail(fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Token "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fail(fmt.Sprintf("request failed: %v", err))
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fail(fmt.Sprintf("failed to decode response: %v", err))
	}
	if decoded.Document == nil {
		return fail(fmt.Sprintf("response missing document structure (status %d)", resp.StatusCode))
	}

	text := decoded.text()
	wordCount := len(strings.Fields(text))
	return Result{
		Success:    true,
		Text:       text,
		Confidence: DensityConfidence(0, wordCount),
		WordCount:  wordCount,
		Source:     SourceCloud,
	}
}
