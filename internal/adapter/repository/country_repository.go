package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// CountryRepository handles country data operations
type CountryRepository struct {
	db *gorm.DB
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// FindByID retrieves a country by ID
func (r *CountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Country, error) {
	var country entities.Country
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

// FindByCode retrieves a country by its short code
func (r *CountryRepository) FindByCode(ctx context.Context, code string) (*entities.Country, error) {
	var country entities.Country
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&country).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

// ListActive returns all active countries ordered by name
func (r *CountryRepository) ListActive(ctx context.Context) ([]*entities.Country, error) {
	var countries []*entities.Country
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&countries).Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// Upsert creates or updates a country by code
func (r *CountryRepository) Upsert(ctx context.Context, country *entities.Country) error {
	if country == nil {
		return errors.New("country cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "flag", "description", "is_active", "updated_at"}),
		}).
		Create(country).Error
}
