package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// SessionRepository defines the interface for interview session data access
type SessionRepository interface {
	// Create creates a new interview session
	Create(ctx context.Context, session *entities.InterviewSession) error

	// FindByID retrieves a session by its ID (nil when absent)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error)

	// Update updates an existing session
	Update(ctx context.Context, session *entities.InterviewSession) error

	// ListByUserID retrieves a page of sessions owned by a user, newest first
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error)

	// UpdateStatus updates the session status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SessionStatus) error
}
