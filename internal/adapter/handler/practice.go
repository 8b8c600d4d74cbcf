package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/borderpass/borderpass-backend/errors"
	practicedto "github.com/borderpass/borderpass-backend/internal/adapter/dto/practice"
	practiceUsecase "github.com/borderpass/borderpass-backend/internal/usecase/practice"
)

// Practice handles practice drill HTTP requests
type Practice struct {
	service practiceUsecase.Service
	logger  *zap.Logger
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(service practiceUsecase.Service, logger *zap.Logger) *Practice {
	return &Practice{
		service: service,
		logger:  logger,
	}
}

// Evaluate handles POST /practice/evaluate
func (h *Practice) Evaluate(c echo.Context) error {
	var req practicedto.EvaluateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	eval, err := h.service.EvaluateAnswer(c.Request().Context(), practiceUsecase.EvaluateInput{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &practicedto.EvaluateResponse{
		Feedback: eval.Feedback,
		Score:    eval.Score,
	})
}
