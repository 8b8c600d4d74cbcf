package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// SessionRepository handles interview session data operations
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new interview session
func (r *SessionRepository) Create(ctx context.Context, session *entities.InterviewSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID retrieves a session by ID
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.InterviewSession, error) {
	var session entities.InterviewSession
	if err := r.db.WithContext(ctx).Preload("Country").Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Update updates an existing session
func (r *SessionRepository) Update(ctx context.Context, session *entities.InterviewSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("id = ?", session.ID).
		Save(session).Error
}

// ListByUserID retrieves a page of sessions owned by a user, newest first
func (r *SessionRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error) {
	var sessions []*entities.InterviewSession
	var total int64

	q := r.db.WithContext(ctx).Model(&entities.InterviewSession{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Country").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

// UpdateStatus updates the session status
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SessionStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.InterviewSession{}).
		Where("id = ?", id).
		Update("status", status).Error
}
