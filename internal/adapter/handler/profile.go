package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/borderpass/borderpass-backend/errors"
	"github.com/borderpass/borderpass-backend/internal/adapter/presenter"
	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/internal/domain/repositories"
)

// Profile handles the authenticated user's own account endpoints
type Profile struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userRepo repositories.UserRepository, logger *zap.Logger) *Profile {
	return &Profile{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Me handles GET /me. The local user row mirrors the hosted auth provider's
// identity claims; it is created on first sight of a valid token.
func (h *Profile) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	user, err := h.userRepo.FindByID(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find user", err))
	}

	if user == nil {
		email, _ := c.Get("user_email").(string)
		role, _ := c.Get("user_role").(string)
		if role == "" {
			role = string(entities.UserRoleStudent)
		}
		user = &entities.User{
			ID:       userID,
			Email:    email,
			Role:     entities.UserRole(role),
			IsActive: true,
		}
		if err := h.userRepo.Upsert(c.Request().Context(), user); err != nil {
			return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("upsert user", err))
		}
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}
