package presenter

import (
	"encoding/json"

	countrydto "github.com/borderpass/borderpass-backend/internal/adapter/dto/country"
	"github.com/borderpass/borderpass-backend/internal/adapter/dto/interview"
	"github.com/borderpass/borderpass-backend/internal/domain/entities"
)

// ToSessionResponse converts an InterviewSession entity to SessionResponse DTO
func ToSessionResponse(s *entities.InterviewSession) *interview.SessionResponse {
	if s == nil {
		return nil
	}

	response := &interview.SessionResponse{
		ID:           s.ID.String(),
		UserID:       s.UserID.String(),
		CountryID:    s.CountryID.String(),
		Mode:         string(s.Mode),
		Status:       string(s.Status),
		RecordingKey: s.RecordingKey,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		CreatedAt:    s.CreatedAt,
	}

	// Include country if loaded
	if s.Country != nil {
		response.Country = ToCountryResponse(s.Country)
	}

	return response
}

// ToSessionListResponse converts a slice of sessions to SessionListResponse
func ToSessionListResponse(sessions []*entities.InterviewSession, total int64, page, pageSize int) *interview.SessionListResponse {
	responses := make([]*interview.SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToSessionResponse(s)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &interview.SessionListResponse{
		Sessions:   responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ToTranscriptResponse converts transcript lines to TranscriptResponse DTO
func ToTranscriptResponse(sessionID string, lines []*entities.TranscriptLine) *interview.TranscriptResponse {
	responses := make([]*interview.TranscriptLineResponse, len(lines))
	for i, line := range lines {
		responses[i] = &interview.TranscriptLineResponse{
			ID:         line.ID.String(),
			Speaker:    string(line.Speaker),
			Text:       line.Text,
			Timestamp:  line.Timestamp,
			Confidence: line.Confidence,
			IsFinal:    line.IsFinal,
		}
	}
	return &interview.TranscriptResponse{
		SessionID: sessionID,
		Lines:     responses,
	}
}

// ToScoreResponse converts a Score entity to ScoreResponse DTO
func ToScoreResponse(s *entities.Score) *interview.ScoreResponse {
	if s == nil {
		return nil
	}

	var weakAreas []string
	if s.WeakAreas != nil {
		json.Unmarshal(s.WeakAreas, &weakAreas)
	}
	if weakAreas == nil {
		weakAreas = []string{}
	}

	var aiAnalysis map[string]interface{}
	if len(s.AIAnalysis) > 0 {
		json.Unmarshal(s.AIAnalysis, &aiAnalysis)
	}

	return &interview.ScoreResponse{
		SessionID:            s.SessionID.String(),
		OverallScore:         s.OverallScore,
		RiskLevel:            string(s.RiskLevel),
		FinancialCredibility: s.FinancialCredibility,
		StudyIntent:          s.StudyIntent,
		ReturnIntent:         s.ReturnIntent,
		ConfidenceScore:      s.ConfidenceScore,
		ConsistencyScore:     s.ConsistencyScore,
		WeakAreas:            weakAreas,
		Feedback:             s.Feedback,
		AIAnalysis:           aiAnalysis,
		CreatedAt:            s.CreatedAt,
	}
}

// ToCountryResponse converts a Country entity to CountryResponse DTO
func ToCountryResponse(c *entities.Country) *countrydto.CountryResponse {
	if c == nil {
		return nil
	}
	return &countrydto.CountryResponse{
		ID:          c.ID.String(),
		Code:        c.Code,
		Name:        c.Name,
		Flag:        c.Flag,
		Description: c.Description,
	}
}

// ToCountryListResponse converts a slice of Country entities
func ToCountryListResponse(countries []*entities.Country) []*countrydto.CountryResponse {
	responses := make([]*countrydto.CountryResponse, len(countries))
	for i, c := range countries {
		responses[i] = ToCountryResponse(c)
	}
	return responses
}

// ToQuestionResponse converts a Question entity to QuestionResponse DTO
func ToQuestionResponse(q *entities.Question) *countrydto.QuestionResponse {
	if q == nil {
		return nil
	}

	var tags []string
	if q.Tags != nil {
		json.Unmarshal(q.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}

	return &countrydto.QuestionResponse{
		ID:         q.ID.String(),
		Text:       q.Text,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Tags:       tags,
	}
}

// ToQuestionListResponse converts a slice of Question entities
func ToQuestionListResponse(questions []*entities.Question) []*countrydto.QuestionResponse {
	responses := make([]*countrydto.QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = ToQuestionResponse(q)
	}
	return responses
}
