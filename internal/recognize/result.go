package recognize

// Source identifies which recognition backend produced a result.
type Source string

const (
	// SourceLocal marks results from the on-device recognizer.
	SourceLocal Source = "local"
	// SourceCloud marks results from the cloud recognition service.
	SourceCloud Source = "cloud"
)

// Result is the uniform shape produced by both recognition adapters. A Result
// is created fresh per attempt and never mutated afterwards.
type Result struct {
	Success       bool    `json:"success"`
	Text          string  `json:"text"`
	Confidence    float64 `json:"confidence"`
	BlockCount    int     `json:"block_count"`
	WordCount     int     `json:"word_count"`
	Source        Source  `json:"source"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

// Block is a recognizer-reported contiguous region of detected text.
type Block struct {
	Text string `json:"text"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
}
