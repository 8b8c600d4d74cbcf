package practice

// EvaluateRequest represents a practice answer to evaluate
type EvaluateRequest struct {
	Question string `json:"question" validate:"required,min=5"`
	Answer   string `json:"answer" validate:"required,min=1"`
	Category string `json:"category" validate:"required"`
}
