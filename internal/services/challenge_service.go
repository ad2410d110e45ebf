package services

import (
	"context"
	errs "errors"
	"strings"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// ChallengeService gerencia desafios e suas conclusões
type ChallengeService struct {
	challengeRepo repositories.ChallengeRepository
	userRepo      repositories.UserRepository
	progress      *ProgressTracker
	uow           ports.UnitOfWork
	metrics       ports.GamificationMetrics
	logger        ports.Logger
}

// NewChallengeService cria um novo ChallengeService
func NewChallengeService(
	challengeRepo repositories.ChallengeRepository,
	userRepo repositories.UserRepository,
	progress *ProgressTracker,
	uow ports.UnitOfWork,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		progress:      progress,
		uow:           uow,
		metrics:       metricsOrNop(metrics),
		logger:        logger.With("service", "challenge"),
	}
}

// Create cadastra um desafio
func (s *ChallengeService) Create(ctx context.Context, description string, value int) (*entities.Challenge, error) {
	description = sanitizeText(description)
	if description == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "description is required")
	}
	if value < 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "value must not be negative")
	}

	challenge := &entities.Challenge{Description: description, Value: value, CreatedAt: time.Now().UTC()}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}

	s.logger.Info("challenge created", "challenge_id", challenge.ID, "value", value)
	return challenge, nil
}

// List retorna todos os desafios
func (s *ChallengeService) List(ctx context.Context) ([]*entities.Challenge, error) {
	return s.challengeRepo.List(ctx)
}

// Search busca desafios pela descrição, sem diferenciar maiúsculas
func (s *ChallengeService) Search(ctx context.Context, term string) ([]*entities.Challenge, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.challengeRepo.List(ctx)
	}
	return s.challengeRepo.Search(ctx, term)
}

// Complete registra a conclusão e concede Value pontos na mesma transação.
// Cada desafio só pode ser concluído uma vez por usuário.
func (s *ChallengeService) Complete(ctx context.Context, userID, challengeID string) (*entities.Challenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, errors.ErrChallengeNotFound
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.Exists(txCtx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrUserNotFound
		}

		completion := &entities.CompletedChallenge{
			UserID:      userID,
			ChallengeID: challengeID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.challengeRepo.CreateCompletion(txCtx, completion); err != nil {
			if errs.Is(err, repositories.ErrDuplicate) {
				return errors.ErrChallengeAlreadyComplete
			}
			return err
		}
		return s.userRepo.IncrementPoints(txCtx, userID, challenge.Value)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PointsAwarded(SourceChallenge, challenge.Value)
	s.logger.Info("challenge completed", "challenge_id", challengeID, "user_id", userID, "points", challenge.Value)

	s.progress.Track(userID, Progress{
		Actions: []entities.Action{entities.ActionCompleteChallenge, entities.ActionEarnPoints},
		Step:    entities.StepFirstChallenge,
	})
	return challenge, nil
}

// ListCompleted retorna os desafios concluídos pelo usuário
func (s *ChallengeService) ListCompleted(ctx context.Context, userID string) ([]*entities.Challenge, error) {
	return s.challengeRepo.ListCompletedByUser(ctx, userID)
}
