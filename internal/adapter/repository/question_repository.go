package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/internal/domain/repositories"
)

// QuestionRepository handles practice question data operations
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create stores a new question
func (r *QuestionRepository) Create(ctx context.Context, question *entities.Question) error {
	if question == nil {
		return errors.New("question cannot be nil")
	}
	return r.db.WithContext(ctx).Create(question).Error
}

// ListByCountryID returns active questions for a country
func (r *QuestionRepository) ListByCountryID(ctx context.Context, countryID uuid.UUID, filters repositories.QuestionFilters) ([]*entities.Question, error) {
	query := r.db.WithContext(ctx).
		Where("country_id = ? AND is_active = ?", countryID, true)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty > 0 {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var questions []*entities.Question
	if err := query.Order("difficulty ASC, created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
