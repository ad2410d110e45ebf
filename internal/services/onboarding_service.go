package services

import (
	"context"
	"fmt"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// OnboardingService mantém o checklist inicial de cada usuário
type OnboardingService struct {
	userRepo       repositories.UserRepository
	profilePicRepo repositories.ProfilePicRepository
	challengeRepo  repositories.ChallengeRepository
	notifications  *NotificationService
	uow            ports.UnitOfWork
	rewards        OnboardingRewards
	metrics        ports.GamificationMetrics
	logger         ports.Logger
}

// NewOnboardingService cria um novo OnboardingService
func NewOnboardingService(
	userRepo repositories.UserRepository,
	profilePicRepo repositories.ProfilePicRepository,
	challengeRepo repositories.ChallengeRepository,
	notifications *NotificationService,
	uow ports.UnitOfWork,
	rewards OnboardingRewards,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *OnboardingService {
	return &OnboardingService{
		userRepo:       userRepo,
		profilePicRepo: profilePicRepo,
		challengeRepo:  challengeRepo,
		notifications:  notifications,
		uow:            uow,
		rewards:        rewards,
		metrics:        metricsOrNop(metrics),
		logger:         logger.With("service", "onboarding"),
	}
}

// OnboardingStatus é o estado do checklist de um usuário
type OnboardingStatus struct {
	Completed   bool
	Steps       entities.OnboardingSteps
	TotalPoints int
}

// StepResult descreve o efeito de CompleteStep
type StepResult struct {
	Applied   bool // false quando a etapa já estava concluída
	Points    int
	Bonus     int
	Completed bool
}

// GetStatus retorna o estado do onboarding
func (s *OnboardingService) GetStatus(ctx context.Context, userID string) (*OnboardingStatus, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	return &OnboardingStatus{
		Completed:   user.OnboardingCompleted,
		Steps:       user.OnboardingSteps,
		TotalPoints: user.Points,
	}, nil
}

// CompleteStepByName valida o nome da etapa antes de concluí-la
func (s *OnboardingService) CompleteStepByName(ctx context.Context, userID, name string) (*StepResult, error) {
	step, err := entities.ParseOnboardingStep(name)
	if err != nil {
		return nil, errors.ErrInvalidOnboardingStep
	}
	return s.CompleteStep(ctx, userID, step)
}

// CompleteStep marca a etapa e concede os pontos. É no-op se o onboarding
// já foi concluído ou a etapa já estava marcada. Flags e pontos são gravados
// na mesma transação, com a linha do usuário bloqueada.
func (s *OnboardingService) CompleteStep(ctx context.Context, userID string, step entities.OnboardingStep) (*StepResult, error) {
	points, ok := s.pointsFor(step)
	if !ok {
		return nil, errors.ErrInvalidOnboardingStep
	}

	result := &StepResult{}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}

		if user.OnboardingCompleted || user.OnboardingSteps.IsDone(step) {
			result.Completed = user.OnboardingCompleted
			return nil
		}

		steps := user.OnboardingSteps.With(step)
		completed := steps.AllDone()

		result.Applied = true
		result.Points = points
		result.Completed = completed
		if completed {
			result.Bonus = s.rewards.Bonus
		}

		return s.userRepo.SaveOnboarding(txCtx, userID, steps, completed, result.Points+result.Bonus)
	})
	if err != nil {
		return nil, err
	}

	if !result.Applied {
		return result, nil
	}

	s.metrics.PointsAwarded(SourceOnboarding, result.Points+result.Bonus)
	s.logger.Info("onboarding step completed",
		"user_id", userID,
		"step", string(step),
		"points", result.Points,
		"bonus", result.Bonus,
	)

	if err := s.notifications.NotifyOnboardingStep(ctx, userID, step, result.Points, result.Bonus); err != nil {
		s.logger.Warn("failed to notify onboarding step", "user_id", userID, "step", string(step), "error", err)
	}

	return result, nil
}

// CheckAndComplete conclui a etapa se a condição correspondente já vale nos dados
func (s *OnboardingService) CheckAndComplete(ctx context.Context, userID string, step entities.OnboardingStep) (*StepResult, error) {
	satisfied, err := s.conditionHolds(ctx, userID, step)
	if err != nil {
		return nil, err
	}
	if !satisfied {
		return &StepResult{}, nil
	}
	return s.CompleteStep(ctx, userID, step)
}

// CheckAndCompleteProfilePic conclui profilePic se existe foto de perfil
func (s *OnboardingService) CheckAndCompleteProfilePic(ctx context.Context, userID string) (*StepResult, error) {
	return s.CheckAndComplete(ctx, userID, entities.StepProfilePic)
}

// CheckAndCompleteBio conclui bio se a biografia não está vazia
func (s *OnboardingService) CheckAndCompleteBio(ctx context.Context, userID string) (*StepResult, error) {
	return s.CheckAndComplete(ctx, userID, entities.StepBio)
}

// CheckAndCompleteFirstChallenge conclui firstChallenge se há ao menos um desafio concluído
func (s *OnboardingService) CheckAndCompleteFirstChallenge(ctx context.Context, userID string) (*StepResult, error) {
	return s.CheckAndComplete(ctx, userID, entities.StepFirstChallenge)
}

func (s *OnboardingService) conditionHolds(ctx context.Context, userID string, step entities.OnboardingStep) (bool, error) {
	switch step {
	case entities.StepProfilePic:
		pic, err := s.profilePicRepo.FindByUser(ctx, userID)
		return pic != nil, err

	case entities.StepBio:
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return false, err
		}
		if user == nil {
			return false, errors.ErrUserNotFound
		}
		return user.HasBiography(), nil

	case entities.StepFirstChallenge:
		n, err := s.challengeRepo.CountCompletedByUser(ctx, userID)
		return n > 0, err
	}
	return false, fmt.Errorf("%w: %s", errors.ErrInvalidOnboardingStep, step)
}

func (s *OnboardingService) pointsFor(step entities.OnboardingStep) (int, bool) {
	switch step {
	case entities.StepProfilePic:
		return s.rewards.ProfilePic, true
	case entities.StepBio:
		return s.rewards.Bio, true
	case entities.StepFirstChallenge:
		return s.rewards.FirstChallenge, true
	}
	return 0, false
}
