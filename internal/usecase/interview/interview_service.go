package interview

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/borderpass/borderpass-backend/errors"
	"github.com/borderpass/borderpass-backend/internal/domain/entities"
	"github.com/borderpass/borderpass-backend/internal/domain/repositories"
)

// recordingURLExpiry bounds how long a presigned recording link stays valid
const recordingURLExpiry = 15 * time.Minute

// InterviewService handles interview session business logic
type InterviewService struct {
	sessionRepo      repositories.SessionRepository
	transcriptRepo   repositories.TranscriptRepository
	scoreRepo        repositories.ScoreRepository
	subscriptionRepo repositories.SubscriptionRepository
	countryRepo      repositories.CountryRepository
	scorer           Scorer
	cache            ScoreCache
	storage          RecordingStorage
	logger           *zap.Logger
}

// NewInterviewService creates a new interview service. Cache and storage may
// be nil; the service then skips score caching and recording URLs.
func NewInterviewService(
	sessionRepo repositories.SessionRepository,
	transcriptRepo repositories.TranscriptRepository,
	scoreRepo repositories.ScoreRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	countryRepo repositories.CountryRepository,
	scorer Scorer,
	cache ScoreCache,
	storage RecordingStorage,
	logger *zap.Logger,
) *InterviewService {
	return &InterviewService{
		sessionRepo:      sessionRepo,
		transcriptRepo:   transcriptRepo,
		scoreRepo:        scoreRepo,
		subscriptionRepo: subscriptionRepo,
		countryRepo:      countryRepo,
		scorer:           scorer,
		cache:            cache,
		storage:          storage,
		logger:           logger,
	}
}

// StartInterview creates a new session after checking plan entitlements
func (s *InterviewService) StartInterview(ctx context.Context, input StartInterviewInput) (*entities.InterviewSession, error) {
	sub, err := s.subscriptionRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find subscription", err)
	}
	if sub == nil {
		// No row yet means a fresh free-tier user.
		sub = entities.NewSubscription(input.UserID)
	}

	if !sub.CanStartInterview() {
		return nil, apperrors.ErrInterviewLimitReached(string(sub.Plan), sub.Plan.InterviewLimit())
	}
	if input.Mode == entities.SessionModeVoice && !sub.Plan.SupportsVoiceMode() {
		return nil, apperrors.ErrVoiceModeGated(string(sub.Plan))
	}

	country, err := s.countryRepo.FindByCode(ctx, input.CountryCode)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find country", err)
	}
	if country == nil || !country.IsActive {
		return nil, apperrors.ErrCountryNotFound(input.CountryCode)
	}

	session := entities.NewInterviewSession(input.UserID, country.ID, input.Mode)
	session.Start()
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, apperrors.ErrDBQueryFailed("create session", err)
	}

	if err := s.subscriptionRepo.IncrementUsage(ctx, input.UserID); err != nil {
		// The session already exists; losing one usage tick is preferable
		// to failing the interview start.
		s.logger.Error("interview.usage_increment_failed",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("interview.started",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("country", country.Code),
		zap.String("mode", string(input.Mode)),
	)
	return session, nil
}

// GetSession retrieves a session owned by the user
func (s *InterviewService) GetSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error) {
	return s.ownedSession(ctx, sessionID, userID)
}

// ListSessions retrieves a page of the user's sessions
func (s *InterviewService) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.InterviewSession, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	sessions, total, err := s.sessionRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.ErrDBQueryFailed("list sessions", err)
	}
	return sessions, total, nil
}

// AppendTranscript stores one utterance. A fragment arriving while the last
// stored line from the same speaker is still partial supersedes that line in
// place; everything else appends.
func (s *InterviewService) AppendTranscript(ctx context.Context, input AppendTranscriptInput) (*entities.TranscriptLine, error) {
	session, err := s.ownedSession(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}
	if session.IsEnded() {
		return nil, apperrors.ErrSessionAlreadyEnded(session.ID.String())
	}

	last, err := s.transcriptRepo.LastBySession(ctx, input.SessionID)
	if err != nil {
		return nil, apperrors.ErrTranscriptSaveFailed(input.SessionID.String(), err)
	}

	if last != nil && last.IsPartial() && last.Speaker == input.Speaker {
		last.Text = input.Text
		last.Timestamp = input.Timestamp
		last.Confidence = input.Confidence
		last.IsFinal = input.IsFinal
		if err := s.transcriptRepo.ReplaceLast(ctx, last); err != nil {
			return nil, apperrors.ErrTranscriptSaveFailed(input.SessionID.String(), err)
		}
		return last, nil
	}

	line := &entities.TranscriptLine{
		ID:         uuid.New(),
		SessionID:  input.SessionID,
		Speaker:    input.Speaker,
		Text:       input.Text,
		Timestamp:  input.Timestamp,
		Confidence: input.Confidence,
		IsFinal:    input.IsFinal,
	}
	if err := s.transcriptRepo.Append(ctx, line); err != nil {
		return nil, apperrors.ErrTranscriptSaveFailed(input.SessionID.String(), err)
	}
	return line, nil
}

// GetTranscript returns the full ordered transcript of a session
func (s *InterviewService) GetTranscript(ctx context.Context, sessionID, userID uuid.UUID) ([]*entities.TranscriptLine, error) {
	if _, err := s.ownedSession(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	lines, err := s.transcriptRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list transcript", err)
	}
	return lines, nil
}

// ScoreSession scores a session exactly once. The stored score is checked in
// the cache, then the database, before the engine ever runs; a hit on either
// is returned verbatim.
func (s *InterviewService) ScoreSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.Score, error) {
	session, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetScore(ctx, sessionID)
		if err != nil {
			s.logger.Warn("interview.score_cache_read_failed",
				zap.String("session_id", sessionID.String()),
				zap.Error(err),
			)
		} else if cached != nil {
			return cached, nil
		}
	}

	existing, err := s.scoreRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find score", err)
	}
	if existing != nil {
		s.cacheScore(ctx, existing)
		return existing, nil
	}

	lines, err := s.transcriptRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrScoringFailed(sessionID.String(), err)
	}

	values := make([]entities.TranscriptLine, len(lines))
	for i, line := range lines {
		values[i] = *line
	}
	result := s.scorer.Score(ctx, values)

	weakAreas, err := json.Marshal(result.WeakAreas)
	if err != nil {
		return nil, apperrors.ErrScoringFailed(sessionID.String(), err)
	}

	score := &entities.Score{
		ID:                   uuid.New(),
		SessionID:            sessionID,
		UserID:               userID,
		OverallScore:         result.OverallScore,
		RiskLevel:            result.RiskLevel,
		FinancialCredibility: result.FinancialCredibility,
		StudyIntent:          result.StudyIntent,
		ReturnIntent:         result.ReturnIntent,
		ConfidenceScore:      result.ConfidenceScore,
		ConsistencyScore:     result.ConsistencyScore,
		WeakAreas:            weakAreas,
		Feedback:             result.Feedback,
	}
	if result.AIAnalysis != nil {
		score.AIAnalysis = []byte(result.AIAnalysis)
	}

	if err := s.scoreRepo.Create(ctx, score); err != nil {
		// A concurrent request may have won the unique-index race; the
		// stored row is authoritative either way.
		stored, findErr := s.scoreRepo.FindBySessionID(ctx, sessionID)
		if findErr == nil && stored != nil {
			return stored, nil
		}
		return nil, apperrors.ErrScoreSaveFailed(sessionID.String(), err)
	}

	if !session.IsEnded() {
		if err := s.sessionRepo.UpdateStatus(ctx, sessionID, entities.SessionStatusCompleted); err != nil {
			s.logger.Warn("interview.session_complete_failed",
				zap.String("session_id", sessionID.String()),
				zap.Error(err),
			)
		}
	}

	s.cacheScore(ctx, score)

	s.logger.Info("interview.scored",
		zap.String("session_id", sessionID.String()),
		zap.Int("overall", score.OverallScore),
		zap.String("risk", string(score.RiskLevel)),
	)
	return score, nil
}

// EndSession marks a session completed
func (s *InterviewService) EndSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error) {
	session, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.IsEnded() {
		return nil, apperrors.ErrSessionAlreadyEnded(sessionID.String())
	}

	session.Complete()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, apperrors.ErrDBQueryFailed("end session", err)
	}

	s.logger.Info("interview.ended", zap.String("session_id", sessionID.String()))
	return session, nil
}

// AttachRecording stores the object key of a finished voice recording
func (s *InterviewService) AttachRecording(ctx context.Context, sessionID, userID uuid.UUID, key string) error {
	session, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	session.RecordingKey = &key
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return apperrors.ErrDBQueryFailed("attach recording", err)
	}
	return nil
}

// GetRecordingURL returns a presigned download URL for the session recording
func (s *InterviewService) GetRecordingURL(ctx context.Context, sessionID, userID uuid.UUID) (string, error) {
	session, err := s.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return "", err
	}
	if session.RecordingKey == nil || *session.RecordingKey == "" || s.storage == nil {
		return "", apperrors.ErrRecordingNotFound(sessionID.String())
	}

	url, err := s.storage.PresignedGetURL(ctx, *session.RecordingKey, recordingURLExpiry)
	if err != nil {
		return "", apperrors.ErrStorageFailed("presign recording", err)
	}
	return url, nil
}

// ownedSession loads a session and enforces ownership
func (s *InterviewService) ownedSession(ctx context.Context, sessionID, userID uuid.UUID) (*entities.InterviewSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("find session", err)
	}
	if session == nil {
		return nil, apperrors.ErrSessionNotFound(sessionID.String())
	}
	if !session.IsOwnedBy(userID) {
		return nil, apperrors.ErrSessionAccessDenied(sessionID.String())
	}
	return session, nil
}

// cacheScore writes through to the cache, best effort
func (s *InterviewService) cacheScore(ctx context.Context, score *entities.Score) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetScore(ctx, score); err != nil {
		s.logger.Warn("interview.score_cache_write_failed",
			zap.String("session_id", score.SessionID.String()),
			zap.Error(err),
		)
	}
}
