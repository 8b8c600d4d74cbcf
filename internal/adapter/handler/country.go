package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/borderpass/borderpass-backend/errors"
	"github.com/borderpass/borderpass-backend/internal/adapter/presenter"
	"github.com/borderpass/borderpass-backend/internal/domain/repositories"
)

// Country handles country catalogue HTTP requests
type Country struct {
	countryRepo  repositories.CountryRepository
	questionRepo repositories.QuestionRepository
	logger       *zap.Logger
}

// NewCountryHandler creates a new country handler
func NewCountryHandler(countryRepo repositories.CountryRepository, questionRepo repositories.QuestionRepository, logger *zap.Logger) *Country {
	return &Country{
		countryRepo:  countryRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// ListCountries handles GET /countries
func (h *Country) ListCountries(c echo.Context) error {
	countries, err := h.countryRepo.ListActive(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list countries", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToCountryListResponse(countries))
}

// GetCountry handles GET /countries/:code
func (h *Country) GetCountry(c echo.Context) error {
	code := c.Param("code")
	country, err := h.countryRepo.FindByCode(c.Request().Context(), code)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find country", err))
	}
	if country == nil || !country.IsActive {
		return HandleError(h.logger, c, apperrors.ErrCountryNotFound(code))
	}
	return HandleSuccess(h.logger, c, presenter.ToCountryResponse(country))
}

// ListQuestions handles GET /countries/:code/questions
func (h *Country) ListQuestions(c echo.Context) error {
	code := c.Param("code")
	country, err := h.countryRepo.FindByCode(c.Request().Context(), code)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find country", err))
	}
	if country == nil || !country.IsActive {
		return HandleError(h.logger, c, apperrors.ErrCountryNotFound(code))
	}

	filters := repositories.QuestionFilters{
		Category: c.QueryParam("category"),
	}
	questions, err := h.questionRepo.ListByCountryID(c.Request().Context(), country.ID, filters)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list questions", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToQuestionListResponse(questions))
}
