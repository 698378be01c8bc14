package pipeline

import (
	"github.com/wenyin0054/fundora-app-sub001/internal/extract"
	"github.com/wenyin0054/fundora-app-sub001/internal/recognize"
)

// Outcome is the final payload returned to the caller of a scan. Success is
// always true: absence of data is signaled through empty fields plus the
// confidence metrics, never through a pipeline failure.
type Outcome struct {
	Success         bool               `json:"success"`
	Text            string             `json:"text"`
	MerchantName    string             `json:"merchant_name"`
	MerchantAddress string             `json:"merchant_address"`
	Phone           string             `json:"phone"`
	TransactionDate string             `json:"transaction_date"`
	TransactionTime string             `json:"transaction_time"`
	TotalAmount     string             `json:"total_amount"`
	LineItems       []extract.LineItem `json:"line_items"`

	// Confidence is the winning attempt's score on a 0-100 scale at this
	// boundary; LocalConfidence is the local adapter's 0-100 score kept for
	// diagnostics regardless of which source won.
	Confidence      float64          `json:"confidence"`
	Source          recognize.Source `json:"source"`
	LocalConfidence float64          `json:"local_confidence"`
	RawText         string           `json:"raw_text"`
}

// Stage identifies a step of the scan state machine, for progress reporting.
type Stage string

const (
	StagePreprocess Stage = "preprocess"
	StageLocal      Stage = "local"
	StageEvaluate   Stage = "evaluate"
	StageCloud      Stage = "cloud"
	StageFinalize   Stage = "finalize"
)

// ProgressFunc receives stage transitions during a scan. It is invoked
// synchronously from the scan goroutine and must not block.
type ProgressFunc func(stage Stage, detail string)
