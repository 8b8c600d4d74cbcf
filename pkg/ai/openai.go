package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/cenkalti/backoff/v4"

	"github.com/borderpass/borderpass-backend/pkg/config"
)

// OpenAIClient is a minimal client for OpenAI chat-completion calls used for
// semantic transcript analysis and practice answer evaluation
type OpenAIClient struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// NewOpenAIClient creates an OpenAI client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	base := "https://api.openai.com"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	maxTokens := 500
	if cfg != nil && cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}

	client := &http.Client{}
	if cfg != nil && cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}

	return &OpenAIClient{
		apiKey:    apiKey,
		baseURL:   base,
		model:     model,
		maxTokens: maxTokens,
		client:    client,
	}
}

// ChatMessage is one message in a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests a structured output mode
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []ChatMessage   `json:"messages,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const analysisSystemPrompt = `You are an expert visa interview evaluator. Analyze this interview transcript and provide a JSON score breakdown with keys: financialCredibility (0-100), studyIntent (0-100), returnIntent (0-100), confidence (0-100), consistency (0-100), keyIssues (array of strings), strengths (array of strings). Respond ONLY with valid JSON.`

// AnalyzeTranscript sends the speaker-labeled conversation to the model and
// returns the raw JSON breakdown. Transient failures are retried with capped
// exponential backoff; callers treat any error as a non-fatal miss.
func (o *OpenAIClient) AnalyzeTranscript(ctx context.Context, conversation string) (json.RawMessage, error) {
	content, err := o.completeJSON(ctx, []ChatMessage{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: conversation},
	})
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("analysis response is not valid JSON")
	}
	return json.RawMessage(content), nil
}

// Evaluation is the structured result of a practice answer evaluation
type Evaluation struct {
	Feedback string `json:"feedback"`
	Score    int    `json:"score"`
}

// EvaluateAnswer asks the model to grade a single practice answer
func (o *OpenAIClient) EvaluateAnswer(ctx context.Context, question, answer, category string) (*Evaluation, error) {
	system := fmt.Sprintf(`You are a visa interview coach evaluating a student's practice answer.
Category being evaluated: %s.
Give constructive, specific feedback in 1-2 sentences. Then provide a numeric score 0-100.
Respond ONLY in JSON: {"feedback": "...", "score": 75}`, category)

	content, err := o.completeJSON(ctx, []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: fmt.Sprintf("Question: %s\nAnswer: %s", question, answer)},
	})
	if err != nil {
		return nil, err
	}

	var eval Evaluation
	if err := json.Unmarshal([]byte(content), &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation: %w", err)
	}
	return &eval, nil
}

// completeJSON performs one JSON-mode chat completion with retries
func (o *OpenAIClient) completeJSON(ctx context.Context, messages []ChatMessage) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("openai api key not configured")
	}

	reqBody := ChatRequest{
		Model:          o.model,
		Messages:       messages,
		Temperature:    0.3,
		MaxTokens:      o.maxTokens,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := o.baseURL + "/v1/chat/completions"

	var content string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+o.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("openai returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("openai returned status %d", resp.StatusCode))
		}

		var cr ChatResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
			return backoff.Permanent(err)
		}
		if len(cr.Choices) == 0 {
			return backoff.Permanent(fmt.Errorf("empty response from openai"))
		}
		content = cr.Choices[0].Message.Content
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		return "", err
	}
	return content, nil
}
