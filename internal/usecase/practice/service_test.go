package practice

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/borderpass/borderpass-backend/pkg/ai"
)

type stubEvaluator struct {
	eval *ai.Evaluation
	err  error
}

func (s *stubEvaluator) EvaluateAnswer(ctx context.Context, question, answer, category string) (*ai.Evaluation, error) {
	return s.eval, s.err
}

func TestEvaluateAnswerReturnsModelResult(t *testing.T) {
	svc := NewPracticeService(&stubEvaluator{
		eval: &ai.Evaluation{Feedback: "Strong, specific answer.", Score: 85},
	}, zap.NewNop())

	eval, err := svc.EvaluateAnswer(context.Background(), EvaluateInput{
		Question: "Who is funding your studies?",
		Answer:   "My father, with documented savings and a scholarship.",
		Category: "financial",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.Score != 85 || eval.Feedback != "Strong, specific answer." {
		t.Errorf("unexpected evaluation: %+v", eval)
	}
}

func TestEvaluateAnswerFallsBackOnProviderFailure(t *testing.T) {
	svc := NewPracticeService(&stubEvaluator{err: errors.New("timeout")}, zap.NewNop())

	eval, err := svc.EvaluateAnswer(context.Background(), EvaluateInput{
		Question: "Why this university?",
		Answer:   "It has the best research group in my field.",
		Category: "study_intent",
	})
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if eval.Feedback != "Good attempt! Keep practicing." || eval.Score != 60 {
		t.Errorf("unexpected fallback: %+v", eval)
	}
}

func TestEvaluateAnswerWithoutEvaluator(t *testing.T) {
	svc := NewPracticeService(nil, zap.NewNop())

	eval, err := svc.EvaluateAnswer(context.Background(), EvaluateInput{
		Question: "Why this university?",
		Answer:   "Because.",
		Category: "study_intent",
	})
	if err != nil {
		t.Fatalf("nil evaluator must fall back, not error: %v", err)
	}
	if eval.Score != 60 {
		t.Errorf("unexpected fallback score: %d", eval.Score)
	}
}
