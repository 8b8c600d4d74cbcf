package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// CountryRepository defines the interface for country data access
type CountryRepository interface {
	// FindByID retrieves a country by ID (nil when absent)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Country, error)

	// FindByCode retrieves a country by its short code (nil when absent)
	FindByCode(ctx context.Context, code string) (*entities.Country, error)

	// ListActive returns all active countries ordered by name
	ListActive(ctx context.Context) ([]*entities.Country, error)

	// Upsert creates or updates a country by code (used by the seeder)
	Upsert(ctx context.Context, country *entities.Country) error
}
