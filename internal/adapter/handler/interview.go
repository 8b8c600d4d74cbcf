package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/borderpass/borderpass-backend/errors"
	interviewdto "github.com/borderpass/borderpass-backend/internal/adapter/dto/interview"
	"github.com/borderpass/borderpass-backend/internal/adapter/presenter"
	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	interviewUsecase "github.com/borderpass/borderpass-backend/internal/usecase/interview"
)

// Interview handles interview session HTTP requests
type Interview struct {
	service interviewUsecase.Service
	logger  *zap.Logger
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(service interviewUsecase.Service, logger *zap.Logger) *Interview {
	return &Interview{
		service: service,
		logger:  logger,
	}
}

// StartInterview handles POST /interviews
func (h *Interview) StartInterview(c echo.Context) error {
	var req interviewdto.StartInterviewRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	userID, ok := userID(c)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	session, err := h.service.StartInterview(c.Request().Context(), interviewUsecase.StartInterviewInput{
		UserID:      userID,
		CountryCode: req.CountryCode,
		Mode:        entities.SessionMode(req.Mode),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

// GetSession handles GET /interviews/:id
func (h *Interview) GetSession(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	session, err := h.service.GetSession(c.Request().Context(), sessionID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

// ListSessions handles GET /interviews
func (h *Interview) ListSessions(c echo.Context) error {
	var req interviewdto.ListSessionsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	userID, ok := userID(c)
	if !ok {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	sessions, total, err := h.service.ListSessions(
		c.Request().Context(), userID, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c,
		presenter.ToSessionListResponse(sessions, total, req.Page, req.PageSize))
}

// AppendTranscript handles POST /interviews/:id/transcript
func (h *Interview) AppendTranscript(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req interviewdto.AppendTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	line, err := h.service.AppendTranscript(c.Request().Context(), interviewUsecase.AppendTranscriptInput{
		SessionID:  sessionID,
		UserID:     userID,
		Speaker:    entities.Speaker(req.Speaker),
		Text:       req.Text,
		Timestamp:  req.Timestamp,
		Confidence: req.Confidence,
		IsFinal:    req.IsFinal,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &interviewdto.TranscriptLineResponse{
		ID:         line.ID.String(),
		Speaker:    string(line.Speaker),
		Text:       line.Text,
		Timestamp:  line.Timestamp,
		Confidence: line.Confidence,
		IsFinal:    line.IsFinal,
	})
}

// GetTranscript handles GET /interviews/:id/transcript
func (h *Interview) GetTranscript(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	lines, err := h.service.GetTranscript(c.Request().Context(), sessionID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(sessionID.String(), lines))
}

// ScoreSession handles POST /interviews/:id/score
func (h *Interview) ScoreSession(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	score, err := h.service.ScoreSession(c.Request().Context(), sessionID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToScoreResponse(score))
}

// EndSession handles POST /interviews/:id/end
func (h *Interview) EndSession(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	session, err := h.service.EndSession(c.Request().Context(), sessionID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(session))
}

// AttachRecording handles PUT /interviews/:id/recording
func (h *Interview) AttachRecording(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req interviewdto.AttachRecordingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	if err := h.service.AttachRecording(c.Request().Context(), sessionID, userID, req.RecordingKey); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, nil)
}

// GetRecordingURL handles GET /interviews/:id/recording
func (h *Interview) GetRecordingURL(c echo.Context) error {
	sessionID, userID, err := h.sessionAndUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	url, err := h.service.GetRecordingURL(c.Request().Context(), sessionID, userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &interviewdto.RecordingURLResponse{URL: url})
}

// sessionAndUser resolves the path session id and the authenticated user
func (h *Interview) sessionAndUser(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.ErrInvalidArgument("invalid session id")
	}
	uid, ok := userID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, apperrors.ErrUnauthenticated()
	}
	return sessionID, uid, nil
}

// userID reads the authenticated user id set by the auth middleware
func userID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id").(uuid.UUID)
	return id, ok
}
