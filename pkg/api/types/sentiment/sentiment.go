package sentiment

import (
	"time"
)

// AnalyzeRequest is the request body of POST /analyze .
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// BatchAnalyzeRequest is the request body of POST /analyze/batch .
type BatchAnalyzeRequest struct {
	Texts []string `json:"texts"`
}

// Detail is the response body of POST /analyze, and an element of batch responses.
type Detail struct {
	Text             string    `json:"text"`
	Sentiment        string    `json:"sentiment"`
	Confidence       float64   `json:"confidence"`
	ProcessingTimeMs float64   `json:"processing_time_ms"`
	ModelVersion     string    `json:"model_version"`
	Timestamp        time.Time `json:"timestamp"`
	CostEstimateUSD  float64   `json:"cost_estimate_usd"`
}

// BatchDetail is the response body of POST /analyze/batch .
//
// Results are ordered as the requested texts.
type BatchDetail struct {
	Results []Detail `json:"results"`
}

// Health is the response body of GET /health .
type Health struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	ModelLoaded bool   `json:"model_loaded"`
}

// ServiceCard is the response body of GET / .
type ServiceCard struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
	Metrics string `json:"metrics"`
}
