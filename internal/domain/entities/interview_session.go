package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionMode represents how the interview is conducted
type SessionMode string

const (
	SessionModeVoice SessionMode = "VOICE"
	SessionModeText  SessionMode = "TEXT"
)

// SessionStatus represents the lifecycle state of an interview session
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
	SessionStatusAbandoned SessionStatus = "ABANDONED"
)

// InterviewSession represents one interview attempt against the AI interviewer
type InterviewSession struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	CountryID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"country_id"`
	Country      *Country      `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Mode         SessionMode   `gorm:"type:varchar(10);not null;default:'VOICE'" json:"mode"`
	Status       SessionStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CallID       *string       `gorm:"type:varchar(255)" json:"call_id,omitempty"`
	RecordingKey *string       `gorm:"type:varchar(512)" json:"recording_key,omitempty"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	EndedAt      *time.Time    `json:"ended_at,omitempty"`
	CreatedAt    time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for InterviewSession
func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// NewInterviewSession creates a pending session for a user
func NewInterviewSession(userID, countryID uuid.UUID, mode SessionMode) *InterviewSession {
	return &InterviewSession{
		ID:        uuid.New(),
		UserID:    userID,
		CountryID: countryID,
		Mode:      mode,
		Status:    SessionStatusPending,
	}
}

// IsOwnedBy reports whether the session belongs to the given user
func (s *InterviewSession) IsOwnedBy(userID uuid.UUID) bool {
	return s != nil && s.UserID == userID
}

// IsEnded reports whether the session reached a terminal state
func (s *InterviewSession) IsEnded() bool {
	return s.Status == SessionStatusCompleted || s.Status == SessionStatusAbandoned
}

// Start marks the session as active
func (s *InterviewSession) Start() {
	now := time.Now()
	s.Status = SessionStatusActive
	s.StartedAt = &now
}

// Complete marks the session as completed
func (s *InterviewSession) Complete() {
	now := time.Now()
	s.Status = SessionStatusCompleted
	s.EndedAt = &now
}
