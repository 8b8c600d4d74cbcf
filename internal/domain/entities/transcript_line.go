package entities

import (
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a transcript line
type Speaker string

const (
	SpeakerStudent Speaker = "STUDENT"
	SpeakerAI      Speaker = "AI"
)

// TranscriptLine represents a single timestamped utterance in an interview.
// Timestamp is seconds from session start and must be non-decreasing per
// session. A partial line may be replaced in place by the next partial or
// final from the same speaker; finalized lines are append-only.
type TranscriptLine struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Speaker    Speaker   `gorm:"type:varchar(10);not null" json:"speaker"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Timestamp  float64   `gorm:"not null" json:"timestamp"`
	Confidence *float64  `json:"confidence,omitempty"`
	IsFinal    bool      `gorm:"not null;default:true" json:"is_final"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (TranscriptLine) TableName() string {
	return "transcript_lines"
}

// IsPartial reports whether the line is still open to replacement
func (t *TranscriptLine) IsPartial() bool {
	return !t.IsFinal
}
