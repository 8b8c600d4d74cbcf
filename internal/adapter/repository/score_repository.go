package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// ScoreRepository handles score data operations
type ScoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create persists a score. The unique index on session_id rejects a second
// write for the same session.
func (r *ScoreRepository) Create(ctx context.Context, score *entities.Score) error {
	if score == nil {
		return errors.New("score cannot be nil")
	}
	return r.db.WithContext(ctx).Create(score).Error
}

// FindBySessionID retrieves the score for a session
func (r *ScoreRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) (*entities.Score, error) {
	var score entities.Score
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &score, nil
}
