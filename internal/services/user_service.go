package services

import (
	"context"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo    repositories.UserRepository
	followRepo  repositories.FollowRepository
	sessionRepo repositories.SessionRepository
	progress    *ProgressTracker
	uow         ports.UnitOfWork
	points      PointValues
	metrics     ports.GamificationMetrics
	logger      ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	sessionRepo repositories.SessionRepository,
	progress *ProgressTracker,
	uow ports.UnitOfWork,
	points PointValues,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		followRepo:  followRepo,
		sessionRepo: sessionRepo,
		progress:    progress,
		uow:         uow,
		points:      points,
		metrics:     metricsOrNop(metrics),
		logger:      logger.With("service", "user"),
	}
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// ListUsers lista usuários com filtros, retornando também o total
func (s *UserService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, int64, error) {
	filters.Pagination = filters.Pagination.Normalize()
	return s.userRepo.List(ctx, filters)
}

// UpdateProfileInput contém os campos editáveis; nil mantém o valor atual
type UpdateProfileInput struct {
	Name      *string
	Biography *string
	BirthDate *time.Time
}

// UpdateProfile altera o perfil. A primeira biografia não vazia concede
// PointValues.FirstBio uma única vez.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, userID string, input UpdateProfileInput) (*entities.User, error) {
	if err := s.authorize(ctx, actorID, userID, entities.PermissionUserWrite); err != nil {
		return nil, err
	}

	var user *entities.User
	rewarded := false

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		user, err = s.userRepo.FindByID(txCtx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.ErrUserNotFound
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Biography != nil {
			user.Biography = sanitizeText(*input.Biography)
		}
		if input.BirthDate != nil {
			age := entities.AgeAt(*input.BirthDate, time.Now())
			if age < MinimumAge || age > MaximumAge {
				return errors.ErrInvalidBirthDate
			}
			birth := input.BirthDate.UTC()
			user.BirthDate = &birth
		}

		if err := user.Validate(); err != nil {
			return errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		if err := s.userRepo.Update(txCtx, user); err != nil {
			return err
		}

		if !user.HasBiography() || user.BioRewarded {
			return nil
		}

		rewarded, err = s.userRepo.MarkBioRewarded(txCtx, userID)
		if err != nil || !rewarded {
			return err
		}
		user.BioRewarded = true
		user.Points += s.points.FirstBio
		return s.userRepo.IncrementPoints(txCtx, userID, s.points.FirstBio)
	})
	if err != nil {
		return nil, err
	}

	if input.Biography != nil && user.HasBiography() {
		actions := []entities.Action{entities.ActionUpdateBio, entities.ActionCompleteProfile}
		if rewarded {
			s.metrics.PointsAwarded(SourceBio, s.points.FirstBio)
			actions = append(actions, entities.ActionEarnPoints)
		}
		s.progress.Track(userID, Progress{Actions: actions, Step: entities.StepBio})
	}

	s.logger.Info("profile updated", "user_id", userID, "bio_rewarded", rewarded)
	return user, nil
}

// DeleteUser remove o usuário, suas arestas de follow e suas sessões.
// Os contadores dos outros usuários são ajustados na mesma transação.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID string) error {
	if err := s.authorize(ctx, actorID, userID, entities.PermissionUserDelete); err != nil {
		return err
	}

	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.Exists(txCtx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrUserNotFound
		}

		followers, err := s.followRepo.ListFollowers(txCtx, userID)
		if err != nil {
			return err
		}
		for _, f := range followers {
			if _, err := s.followRepo.Delete(txCtx, f.ID, userID); err != nil {
				return err
			}
			if err := s.userRepo.IncrementFollowCounters(txCtx, f.ID, userID, -1); err != nil {
				return err
			}
		}

		following, err := s.followRepo.ListFollowing(txCtx, userID)
		if err != nil {
			return err
		}
		for _, f := range following {
			if _, err := s.followRepo.Delete(txCtx, userID, f.ID); err != nil {
				return err
			}
			if err := s.userRepo.IncrementFollowCounters(txCtx, userID, f.ID, -1); err != nil {
				return err
			}
		}

		if err := s.sessionRepo.InvalidateAllForUser(txCtx, userID); err != nil {
			return err
		}
		return s.userRepo.Delete(txCtx, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "user_id", userID, "actor_id", actorID)
	return nil
}

// authorize libera a operação ao próprio usuário ou a quem tem a permissão
func (s *UserService) authorize(ctx context.Context, actorID, userID string, permission entities.Permission) error {
	if actorID == userID {
		return nil
	}
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil || !actor.CanActOn(userID, permission) {
		return errors.ErrForbidden
	}
	return nil
}
