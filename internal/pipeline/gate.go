package pipeline

import (
	"github.com/wenyin0054/fundora-app-sub001/internal/extract"
	"github.com/wenyin0054/fundora-app-sub001/internal/recognize"
)

// Fallback gate reasons. Cloud recognition runs when any of these hold
// after the local attempt.
const (
	ReasonLocalFailed     = "local_failed"
	ReasonLowConfidence   = "low_confidence"
	ReasonMissingTotal    = "missing_total"
	ReasonMissingMerchant = "missing_merchant"
)

// FallbackReasons evaluates the four fallback conditions against the local
// recognition result and the fields extracted from it, returning every
// condition that holds.
func FallbackReasons(local recognize.Result, fields extract.Fields, minConfidence float64) []string {
	var reasons []string
	if !local.Success {
		reasons = append(reasons, ReasonLocalFailed)
	}
	if local.Confidence < minConfidence {
		reasons = append(reasons, ReasonLowConfidence)
	}
	if fields.Total == "" {
		reasons = append(reasons, ReasonMissingTotal)
	}
	if fields.Merchant == "" {
		reasons = append(reasons, ReasonMissingMerchant)
	}
	return reasons
}

// ShouldFallback reports whether the cloud attempt is triggered.
func ShouldFallback(local recognize.Result, fields extract.Fields, minConfidence float64) bool {
	return len(FallbackReasons(local, fields, minConfidence)) > 0
}
