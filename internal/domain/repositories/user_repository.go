package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID retrieves a user by ID (nil when absent)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByEmail retrieves a user by email (nil when absent)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// Upsert creates or refreshes a user row from identity claims
	Upsert(ctx context.Context, user *entities.User) error
}
