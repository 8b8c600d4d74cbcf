package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// SubscriptionRepository handles subscription data operations
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// FindByUserID retrieves a user's subscription
func (r *SubscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entities.Subscription, error) {
	var sub entities.Subscription
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// IncrementUsage bumps the interview usage counter, creating a free-tier row
// when the user has none yet. Runs in a transaction so concurrent session
// creates cannot lose an increment.
func (r *SubscriptionRepository) IncrementUsage(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub entities.Subscription
		err := tx.Where("user_id = ?", userID).First(&sub).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sub = *entities.NewSubscription(userID)
			sub.InterviewsUsed = 1
			return tx.Create(&sub).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&entities.Subscription{}).
			Where("user_id = ?", userID).
			Update("interviews_used", gorm.Expr("interviews_used + 1")).Error
	})
}
