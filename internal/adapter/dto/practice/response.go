package practice

// EvaluateResponse represents the graded practice answer
type EvaluateResponse struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
}
