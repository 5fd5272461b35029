package history

import (
	"time"
)

// Detail is an element of the response body of GET /history .
//
// Analyzed texts themselves are not stored; only their length is kept.
type Detail struct {
	TextLength       int       `json:"text_length"`
	Sentiment        string    `json:"sentiment"`
	Confidence       float64   `json:"confidence"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	ModelVersion     string    `json:"model_version"`
	Timestamp        time.Time `json:"timestamp"`
}

// Stats is the response body of GET /history/stats .
type Stats struct {
	Counts map[string]int64 `json:"counts"`
}

// Purged is the response body of DELETE /history .
type Purged struct {
	Deleted int64 `json:"deleted"`
}
