package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript line data access
type TranscriptRepository interface {
	// Append stores a new transcript line
	Append(ctx context.Context, line *entities.TranscriptLine) error

	// ReplaceLast overwrites an existing line in place (partial supersession)
	ReplaceLast(ctx context.Context, line *entities.TranscriptLine) error

	// LastBySession returns the most recent line for a session (nil when empty)
	LastBySession(ctx context.Context, sessionID uuid.UUID) (*entities.TranscriptLine, error)

	// ListBySession returns all lines for a session ordered by timestamp
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.TranscriptLine, error)
}
