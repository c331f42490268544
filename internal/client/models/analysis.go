package models

import (
	"encoding/json"
	"time"
)

// AnalysisStatus classifies the lifecycle of a submitted analysis.
type AnalysisStatus string

const (
	AnalysisStatusPending    AnalysisStatus = "pending"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusCompleted  AnalysisStatus = "completed"
	AnalysisStatusFailed     AnalysisStatus = "failed"
)

// Analysis is one personality/compatibility report. Result is kept opaque:
// its shape is owned by the AI pipeline and the client only renders it.
type Analysis struct {
	ID          string          `json:"id"`
	Status      AnalysisStatus  `json:"status"`
	Plan        string          `json:"plan"`
	CreditsUsed int             `json:"creditsUsed"`
	IsPublic    bool            `json:"isPublic"`
	ShareToken  string          `json:"shareToken"`
	Result      json.RawMessage `json:"result"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
