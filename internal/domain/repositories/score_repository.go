package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// ScoreRepository defines the interface for score data access
type ScoreRepository interface {
	// Create persists a score. Fails on duplicate session id; scores are
	// immutable once written.
	Create(ctx context.Context, score *entities.Score) error

	// FindBySessionID retrieves the score for a session (nil when absent)
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.Score, error)
}
