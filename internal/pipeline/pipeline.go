package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/wenyin0054/fundora-app-sub001/internal/extract"
	"github.com/wenyin0054/fundora-app-sub001/internal/preprocess"
	"github.com/wenyin0054/fundora-app-sub001/internal/recognize"
)

// Config holds configuration for the receipt pipeline and its components.
type Config struct {
	Preprocess preprocess.Config     `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`
	Cloud      recognize.CloudConfig `mapstructure:"cloud" yaml:"cloud" json:"cloud"`

	// MediumConfidence is the local-confidence threshold below which the
	// cloud fallback triggers.
	MediumConfidence float64 `mapstructure:"medium_confidence" yaml:"medium_confidence" json:"medium_confidence"`

	// CloudEnabled allows hosts to disable the cloud fallback entirely.
	CloudEnabled bool `mapstructure:"cloud_enabled" yaml:"cloud_enabled" json:"cloud_enabled"`
}

// DefaultCloudEndpoint is the fixed prediction endpoint of the cloud
// receipt-recognition service.
const DefaultCloudEndpoint = "https://api.mindee.net/v1/products/mindee/expense_receipts/v5/predict"

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Preprocess:       preprocess.DefaultConfig(),
		Cloud:            recognize.CloudConfig{Endpoint: DefaultCloudEndpoint},
		MediumConfidence: 0.5,
		CloudEnabled:     true,
	}
}

// Validate checks config sanity.
func (c Config) Validate() error {
	if err := c.Preprocess.Validate(); err != nil {
		return err
	}
	if c.MediumConfidence < 0 || c.MediumConfidence > 1 {
		return errors.New("medium_confidence must be in [0, 1]")
	}
	if c.CloudEnabled {
		if err := c.Cloud.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// localRecognizer and cloudRecognizer are the adapter seams the pipeline
// depends on; tests substitute stubs here.
type localRecognizer interface {
	Recognize(ctx context.Context, imagePath string) recognize.Result
}

type cloudRecognizer interface {
	Recognize(ctx context.Context, imageRef string) recognize.Result
}

// Pipeline sequences preprocessing, local recognition, field extraction,
// the fallback gate, and the optional cloud attempt. A Pipeline is safe for
// concurrent use: every scan builds only fresh, immutable values.
type Pipeline struct {
	cfg      Config
	pre      *preprocess.Preprocessor
	local    localRecognizer
	cloud    cloudRecognizer
	progress ProgressFunc
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg        Config
	recognizer recognize.TextRecognizer
	httpClient *http.Client
	progress   ProgressFunc
	localOv    localRecognizer
	cloudOv    cloudRecognizer
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the whole config.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithRecognizer sets the on-device text recognition capability.
func (b *Builder) WithRecognizer(rec recognize.TextRecognizer) *Builder {
	b.recognizer = rec
	return b
}

// WithCloud sets the cloud endpoint credentials.
func (b *Builder) WithCloud(cfg recognize.CloudConfig) *Builder {
	b.cfg.Cloud = cfg
	return b
}

// WithCloudEnabled toggles the cloud fallback.
func (b *Builder) WithCloudEnabled(enabled bool) *Builder {
	b.cfg.CloudEnabled = enabled
	return b
}

// WithHTTPClient injects the client used for cloud recognition. The default
// client carries no timeout; a hung call hangs the scan.
func (b *Builder) WithHTTPClient(c *http.Client) *Builder {
	b.httpClient = c
	return b
}

// WithMediumConfidence overrides the fallback confidence threshold.
func (b *Builder) WithMediumConfidence(t float64) *Builder {
	if t > 0 {
		b.cfg.MediumConfidence = t
	}
	return b
}

// WithCacheDir overrides the processed-image cache location.
func (b *Builder) WithCacheDir(dir string) *Builder {
	if dir != "" {
		b.cfg.Preprocess.CacheDir = dir
	}
	return b
}

// WithProgress registers a stage-transition callback.
func (b *Builder) WithProgress(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// withLocalAdapter and withCloudAdapter replace whole adapters; used by
// tests to run the state machine against stubs.
func (b *Builder) withLocalAdapter(l localRecognizer) *Builder {
	b.localOv = l
	return b
}

func (b *Builder) withCloudAdapter(c cloudRecognizer) *Builder {
	b.cloudOv = c
	return b
}

// Build validates the configuration and assembles the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	pre, err := preprocess.NewPreprocessor(b.cfg.Preprocess)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      b.cfg,
		pre:      pre,
		local:    recognize.NewLocal(b.recognizer),
		progress: b.progress,
	}
	if b.localOv != nil {
		p.local = b.localOv
	}

	switch {
	case b.cloudOv != nil:
		p.cloud = b.cloudOv
	case b.cfg.CloudEnabled:
		cloud, err := recognize.NewCloud(b.cfg.Cloud, b.httpClient)
		if err != nil {
			return nil, err
		}
		p.cloud = cloud
	}

	return p, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config { return p.cfg }

func observeStage(stage Stage, start time.Time) {
	stageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
}

// ProcessReceipt runs the scan state machine:
// Preprocess -> LocalAttempt -> Evaluate -> (Finalize | CloudAttempt -> Finalize).
// It never fails at the outer level: both recognizers under-delivering
// yields an Outcome with empty fields, not an error.
func (p *Pipeline) ProcessReceipt(ctx context.Context, imagePath string) (*Outcome, error) {
	return p.ProcessReceiptWithProgress(ctx, imagePath, p.progress)
}

// ProcessReceiptWithProgress is ProcessReceipt with a per-scan progress
// callback, overriding any callback registered at build time.
func (p *Pipeline) ProcessReceiptWithProgress(ctx context.Context, imagePath string, progress ProgressFunc) (*Outcome, error) {
	if p == nil || p.local == nil {
		return nil, errors.New("pipeline not initialized")
	}
	if strings.TrimSpace(imagePath) == "" {
		return nil, errors.New("empty image path")
	}
	emit := func(stage Stage, detail string) {
		if progress != nil {
			progress(stage, detail)
		}
	}

	// Preprocess. A total preprocessing failure degrades to the unmodified
	// original image; the scan never aborts here.
	emit(StagePreprocess, imagePath)
	preStart := time.Now()
	workingPath := imagePath
	if processed, err := p.pre.Preprocess(imagePath); err != nil {
		slog.Warn("Preprocessing failed, using original image", "error", err)
	} else {
		workingPath = processed.Path
		slog.Debug("Preprocessing done",
			"path", processed.Path, "width", processed.Width,
			"height", processed.Height, "cropped", processed.Cropped)
	}
	observeStage(StagePreprocess, preStart)

	// Local attempt on the processed image.
	emit(StageLocal, workingPath)
	localStart := time.Now()
	localResult := p.local.Recognize(ctx, workingPath)
	observeStage(StageLocal, localStart)

	finalText := localResult.Text
	fields := extract.Extract(finalText)
	source := recognize.SourceLocal
	confidence := localResult.Confidence

	// Evaluate the fallback gate.
	emit(StageEvaluate, "")
	reasons := FallbackReasons(localResult, fields, p.cfg.MediumConfidence)
	if len(reasons) > 0 && p.cloud != nil {
		for _, r := range reasons {
			fallbacksTotal.WithLabelValues(r).Inc()
		}
		slog.Info("Cloud fallback triggered", "reasons", strings.Join(reasons, ","))

		// The cloud attempt uses the original image so server-side cropping
		// does not compound local crop errors.
		emit(StageCloud, imagePath)
		cloudStart := time.Now()
		cloudResult := p.cloud.Recognize(ctx, imagePath)
		observeStage(StageCloud, cloudStart)

		if cloudResult.Success && cloudResult.Text != "" {
			// Wholesale replacement: text and fields both come from the
			// cloud attempt, never merged with the local ones.
			finalText = cloudResult.Text
			fields = extract.Extract(finalText)
			source = recognize.SourceCloud
			confidence = cloudResult.Confidence
		} else {
			slog.Debug("Cloud attempt did not improve result", "reason", cloudResult.FailureReason)
		}
	}

	emit(StageFinalize, string(source))
	scansTotal.WithLabelValues(string(source)).Inc()

	return &Outcome{
		Success:         true,
		Text:            finalText,
		MerchantName:    fields.Merchant,
		MerchantAddress: fields.Address,
		Phone:           fields.Phone,
		TransactionDate: fields.Date,
		TransactionTime: fields.Time,
		TotalAmount:     fields.Total,
		LineItems:       fields.LineItems,
		Confidence:      confidence * 100,
		Source:          source,
		LocalConfidence: localResult.Confidence * 100,
		RawText:         finalText,
	}, nil
}
