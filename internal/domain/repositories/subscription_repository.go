package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// FindByUserID retrieves a user's subscription (nil when absent)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Subscription, error)

	// IncrementUsage bumps the interview usage counter, creating a free-tier
	// row when the user has none yet
	IncrementUsage(ctx context.Context, userID uuid.UUID) error
}
