package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RiskLevel classifies overall interview performance
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelHigh     RiskLevel = "HIGH"
)

// Score is the persisted scoring result for an interview session. Created
// exactly once per session and never mutated afterwards; idempotence is
// enforced by the caller looking up an existing row before scoring.
type Score struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	UserID               uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	OverallScore         int            `gorm:"not null" json:"overall_score"`
	RiskLevel            RiskLevel      `gorm:"type:varchar(10);not null" json:"risk_level"`
	FinancialCredibility int            `gorm:"not null" json:"financial_credibility"`
	StudyIntent          int            `gorm:"not null" json:"study_intent"`
	ReturnIntent         int            `gorm:"not null" json:"return_intent"`
	ConfidenceScore      int            `gorm:"not null" json:"confidence_score"`
	ConsistencyScore     int            `gorm:"not null" json:"consistency_score"`
	WeakAreas            datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"weak_areas"`
	Feedback             string         `gorm:"type:text" json:"feedback"`
	AIAnalysis           datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"ai_analysis,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Score
func (Score) TableName() string {
	return "scores"
}
