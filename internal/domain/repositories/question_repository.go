package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// QuestionFilters narrows a question listing
type QuestionFilters struct {
	Category   string
	Difficulty int
	Limit      int
}

// QuestionRepository defines the interface for practice question data access
type QuestionRepository interface {
	// Create stores a new question
	Create(ctx context.Context, question *entities.Question) error

	// ListByCountryID returns active questions for a country
	ListByCountryID(ctx context.Context, countryID uuid.UUID, filters QuestionFilters) ([]*entities.Question, error)
}
