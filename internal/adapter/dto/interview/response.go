package interview

import (
	"time"

	"github.com/borderpass/borderpass-backend/internal/adapter/dto/country"
)

// SessionResponse represents an interview session in responses
type SessionResponse struct {
	ID           string                   `json:"id"`
	UserID       string                   `json:"user_id"`
	CountryID    string                   `json:"country_id"`
	Country      *country.CountryResponse `json:"country,omitempty"`
	Mode         string                   `json:"mode"`
	Status       string                   `json:"status"`
	RecordingKey *string                  `json:"recording_key,omitempty"`
	StartedAt    *time.Time               `json:"started_at,omitempty"`
	EndedAt      *time.Time               `json:"ended_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

// SessionListResponse represents a paginated list of sessions
type SessionListResponse struct {
	Sessions   []*SessionResponse `json:"sessions"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// TranscriptLineResponse represents one transcript line in responses
type TranscriptLineResponse struct {
	ID         string   `json:"id"`
	Speaker    string   `json:"speaker"`
	Text       string   `json:"text"`
	Timestamp  float64  `json:"timestamp"`
	Confidence *float64 `json:"confidence,omitempty"`
	IsFinal    bool     `json:"is_final"`
}

// TranscriptResponse represents the full ordered transcript of a session
type TranscriptResponse struct {
	SessionID string                    `json:"session_id"`
	Lines     []*TranscriptLineResponse `json:"lines"`
}

// ScoreResponse represents a scoring result in responses
type ScoreResponse struct {
	SessionID            string                 `json:"session_id"`
	OverallScore         int                    `json:"overall_score"`
	RiskLevel            string                 `json:"risk_level"`
	FinancialCredibility int                    `json:"financial_credibility"`
	StudyIntent          int                    `json:"study_intent"`
	ReturnIntent         int                    `json:"return_intent"`
	ConfidenceScore      int                    `json:"confidence_score"`
	ConsistencyScore     int                    `json:"consistency_score"`
	WeakAreas            []string               `json:"weak_areas"`
	Feedback             string                 `json:"feedback"`
	AIAnalysis           map[string]interface{} `json:"ai_analysis,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

// RecordingURLResponse carries a presigned recording download URL
type RecordingURLResponse struct {
	URL string `json:"url"`
}
