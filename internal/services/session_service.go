package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

const sessionTokenBytes = 32

// SessionService gerencia sessões server-side
type SessionService struct {
	sessionRepo repositories.SessionRepository
	ttl         time.Duration
	now         func() time.Time
	logger      ports.Logger
}

// NewSessionService cria um novo SessionService. ttl <= 0 usa entities.SessionTTL.
func NewSessionService(sessionRepo repositories.SessionRepository, ttl time.Duration, logger ports.Logger) *SessionService {
	if ttl <= 0 {
		ttl = entities.SessionTTL
	}
	return &SessionService{
		sessionRepo: sessionRepo,
		ttl:         ttl,
		now:         time.Now,
		logger:      logger.With("service", "session"),
	}
}

// SessionInput identifica o cliente que abre a sessão
type SessionInput struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// Create abre uma sessão com token aleatório
func (s *SessionService) Create(ctx context.Context, input SessionInput) (*entities.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &entities.Session{
		UserID:       input.UserID,
		Token:        token,
		IPAddress:    input.IPAddress,
		UserAgent:    input.UserAgent,
		LastActivity: now,
		ExpiresAt:    now.Add(s.ttl),
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug("session created", "user_id", input.UserID)
	return session, nil
}

// Validate retorna a sessão ativa do token e registra a atividade.
// Sessões expiradas são invalidadas.
func (s *SessionService) Validate(ctx context.Context, token string) (*entities.Session, error) {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.ErrSessionInvalid
	}

	now := s.now().UTC()
	if !session.IsValid(now) {
		if session.IsActive {
			if err := s.sessionRepo.Invalidate(ctx, token); err != nil {
				s.logger.Warn("failed to invalidate expired session", "error", err)
			}
		}
		return nil, errors.ErrSessionInvalid
	}

	if err := s.sessionRepo.Touch(ctx, token, now.UnixMilli()); err != nil {
		return nil, err
	}
	session.LastActivity = now
	return session, nil
}

// Invalidate encerra uma sessão
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	return s.sessionRepo.Invalidate(ctx, token)
}

// InvalidateAll encerra todas as sessões do usuário
func (s *SessionService) InvalidateAll(ctx context.Context, userID string) error {
	return s.sessionRepo.InvalidateAllForUser(ctx, userID)
}

// ListActive lista as sessões válidas do usuário
func (s *SessionService) ListActive(ctx context.Context, userID string) ([]*entities.Session, error) {
	return s.sessionRepo.ListActive(ctx, userID, s.now().UnixMilli())
}

// CleanupExpired remove sessões expiradas ou inativas
func (s *SessionService) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	removed, err := s.sessionRepo.DeleteExpired(ctx, now.UnixMilli())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("expired sessions removed", "count", removed)
	}
	return removed, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
