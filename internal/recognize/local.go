package recognize

import (
	"context"
	"log/slog"
	"strings"
)

// TextRecognizer is the on-device recognition capability consumed by the
// local adapter. Implementations live outside this module; the adapter only
// assumes text plus detected blocks.
type TextRecognizer interface {
	Recognize(ctx context.Context, imagePath string) (text string, blocks []Block, err error)
}

// Local adapts an on-device TextRecognizer to the uniform Result shape,
// attaching a heuristic confidence score.
type Local struct {
	rec    TextRecognizer
	policy ConfidencePolicy
}

// LocalOption customizes a Local adapter.
type LocalOption func(*Local)

// WithConfidencePolicy swaps the confidence heuristic.
func WithConfidencePolicy(p ConfidencePolicy) LocalOption {
	return func(l *Local) {
		if p != nil {
			l.policy = p
		}
	}
}

// NewLocal builds a local recognition adapter around rec.
func NewLocal(rec TextRecognizer, opts ...LocalOption) *Local {
	l := &Local{rec: rec, policy: DensityConfidence}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// normalizeConduitPath strips a URI scheme prefix the platform recognizer
// conduit cannot parse. At least one supported platform rejects file:// paths.
func normalizeConduitPath(path string) string {
	return strings.TrimPrefix(path, "file://")
}

// Recognize invokes the on-device recognizer and never returns an error:
// failures become a zero-confidence Result with the reason captured, which
// downstream treats as a cloud-fallback trigger.
func (l *Local) Recognize(ctx context.Context, imagePath string) Result {
	if l.rec == nil {
		return Result{Source: SourceLocal, FailureReason: "no on-device recognizer registered"}
	}

	text, blocks, err := l.rec.Recognize(ctx, normalizeConduitPath(imagePath))
	if err != nil {
		slog.Debug("Local recognition failed", "error", err)
		return Result{Source: SourceLocal, FailureReason: err.Error()}
	}

	wordCount := len(strings.Fields(text))
	blockCount := len(blocks)
	return Result{
		Success:    true,
		Text:       text,
		Confidence: l.policy(blockCount, wordCount),
		BlockCount: blockCount,
		WordCount:  wordCount,
		Source:     SourceLocal,
	}
}
