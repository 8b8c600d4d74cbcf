package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/internal/usecase/scoring"
)

// Service defines the interface for the interview use case
type Service interface {
	// StartInterview creates a new session after checking plan entitlements
	StartInterview(ctx context.Context, input StartInterviewInput) (*entities.InterviewSession, error)

	// GetSession retrieves a session owned by the user
	GetSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error)

	// ListSessions retrieves a page of the user's sessions, newest first
	ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error)

	// AppendTranscript stores one utterance, merging consecutive partials
	AppendTranscript(ctx context.Context, input AppendTranscriptInput) (*entities.TranscriptLine, error)

	// GetTranscript returns the full ordered transcript of a session
	GetTranscript(ctx context.Context, sessionID, userID uuid.UUID) ([]*entities.TranscriptLine, error)

	// ScoreSession scores a session exactly once; repeated calls return the
	// stored result
	ScoreSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.Score, error)

	// EndSession marks a session completed
	EndSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error)

	// AttachRecording stores the object key of a finished voice recording
	AttachRecording(ctx context.Context, sessionID, userID uuid.UUID, key string) error

	// GetRecordingURL returns a presigned download URL for the recording
	GetRecordingURL(ctx context.Context, sessionID, userID uuid.UUID) (string, error)
}

// Scorer produces an assessment from an ordered transcript
type Scorer interface {
	Score(ctx context.Context, lines []entities.TranscriptLine) *scoring.Result
}

// ScoreCache is a read-through cache in front of the score table
type ScoreCache interface {
	GetScore(ctx context.Context, sessionID uuid.UUID) (*entities.Score, error)
	SetScore(ctx context.Context, score *entities.Score) error
}

// RecordingStorage resolves stored recording objects to download URLs
type RecordingStorage interface {
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// StartInterviewInput represents input for starting an interview
type StartInterviewInput struct {
	UserID      uuid.UUID
	CountryCode string
	Mode        entities.SessionMode
}

// AppendTranscriptInput represents one inbound transcript fragment
type AppendTranscriptInput struct {
	SessionID  uuid.UUID
	UserID     uuid.UUID
	Speaker    entities.Speaker
	Text       string
	Timestamp  float64
	Confidence *float64
	IsFinal    bool
}
