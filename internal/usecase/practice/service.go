package practice

import (
	"context"

	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/pkg/ai"
)

// Evaluator grades a single practice answer
type Evaluator interface {
	EvaluateAnswer(ctx context.Context, question, answer, category string) (*ai.Evaluation, error)
}

// Service defines the interface for the practice use case
type Service interface {
	// EvaluateAnswer grades one practice answer, falling back to a fixed
	// encouragement when the model is unavailable
	EvaluateAnswer(ctx context.Context, input EvaluateInput) (*ai.Evaluation, error)
}

// EvaluateInput represents one practice answer to grade
type EvaluateInput struct {
	Question string
	Answer   string
	Category string
}

// PracticeService handles practice drill business logic
type PracticeService struct {
	evaluator Evaluator
	logger    *zap.Logger
}

// NewPracticeService creates a new practice service. Evaluator may be nil
// when no model provider is configured.
func NewPracticeService(evaluator Evaluator, logger *zap.Logger) *PracticeService {
	return &PracticeService{
		evaluator: evaluator,
		logger:    logger,
	}
}

// EvaluateAnswer grades one practice answer. Model failures degrade to a
// fixed fallback rather than erroring: the drill loop must never stall on a
// provider outage.
func (s *PracticeService) EvaluateAnswer(ctx context.Context, input EvaluateInput) (*ai.Evaluation, error) {
	if s.evaluator == nil {
		return fallbackEvaluation(), nil
	}

	eval, err := s.evaluator.EvaluateAnswer(ctx, input.Question, input.Answer, input.Category)
	if err != nil {
		s.logger.Warn("practice.evaluation_failed",
			zap.String("category", input.Category),
			zap.Error(err),
		)
		return fallbackEvaluation(), nil
	}
	return eval, nil
}

func fallbackEvaluation() *ai.Evaluation {
	return &ai.Evaluation{
		Feedback: "Good attempt! Keep practicing.",
		Score:    60,
	}
}
