package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// TranscriptRepository handles transcript line data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Append stores a new transcript line
func (r *TranscriptRepository) Append(ctx context.Context, line *entities.TranscriptLine) error {
	if line == nil {
		return errors.New("transcript line cannot be nil")
	}
	return r.db.WithContext(ctx).Create(line).Error
}

// ReplaceLast overwrites an existing line in place. Used when a final line
// supersedes the trailing partial from the same speaker.
func (r *TranscriptRepository) ReplaceLast(ctx context.Context, line *entities.TranscriptLine) error {
	if line == nil {
		return errors.New("transcript line cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.TranscriptLine{}).
		Where("id = ?", line.ID).
		Updates(map[string]interface{}{
			"text":       line.Text,
			"timestamp":  line.Timestamp,
			"confidence": line.Confidence,
			"is_final":   line.IsFinal,
		}).Error
}

// LastBySession returns the most recent line for a session
func (r *TranscriptRepository) LastBySession(ctx context.Context, sessionID uuid.UUID) (*entities.TranscriptLine, error) {
	var line entities.TranscriptLine
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC, created_at DESC").
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// ListBySession returns all lines for a session ordered by timestamp
func (r *TranscriptRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*entities.TranscriptLine, error) {
	var lines []*entities.TranscriptLine
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
