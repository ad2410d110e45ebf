package services

import (
	"context"
	errs "errors"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// FollowService mantém o grafo social e os contadores denormalizados
type FollowService struct {
	userRepo      repositories.UserRepository
	followRepo    repositories.FollowRepository
	notifications *NotificationService
	progress      *ProgressTracker
	uow           ports.UnitOfWork
	logger        ports.Logger
}

// NewFollowService cria um novo FollowService
func NewFollowService(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	notifications *NotificationService,
	progress *ProgressTracker,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *FollowService {
	return &FollowService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		notifications: notifications,
		progress:      progress,
		uow:           uow,
		logger:        logger.With("service", "follow"),
	}
}

// Follow cria a aresta e incrementa seguindo/seguidores na mesma transação
func (s *FollowService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return errors.ErrSelfFollow
	}

	target, err := s.userRepo.FindByID(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return errors.ErrUserNotFound
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		follow := &entities.Follow{
			FollowerID:  followerID,
			FollowingID: followingID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.followRepo.Create(txCtx, follow); err != nil {
			if errs.Is(err, repositories.ErrDuplicate) {
				return errors.ErrAlreadyFollowing
			}
			return err
		}
		return s.userRepo.IncrementFollowCounters(txCtx, followerID, followingID, 1)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user followed", "follower_id", followerID, "following_id", followingID)

	s.progress.Run("follow.notify", func(taskCtx context.Context) error {
		follower, err := s.userRepo.FindByID(taskCtx, followerID)
		if err != nil || follower == nil {
			return err
		}
		return s.notifications.NotifyFollower(taskCtx, followingID, follower)
	})
	s.progress.Track(followingID, Progress{Actions: []entities.Action{entities.ActionGainFollower}})

	return nil
}

// Unfollow remove a aresta e decrementa os contadores na mesma transação
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID string) error {
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		removed, err := s.followRepo.Delete(txCtx, followerID, followingID)
		if err != nil {
			return err
		}
		if !removed {
			return errors.ErrNotFollowing
		}
		return s.userRepo.IncrementFollowCounters(txCtx, followerID, followingID, -1)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user unfollowed", "follower_id", followerID, "following_id", followingID)
	return nil
}

// IsFollowing informa se followerID segue followingID
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// ListFollowers lista quem segue userID
func (s *FollowService) ListFollowers(ctx context.Context, userID string) ([]*entities.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID)
}

// ListFollowing lista quem userID segue
func (s *FollowService) ListFollowing(ctx context.Context, userID string) ([]*entities.User, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID)
}

// ReconcileCounters recalcula seguidores/seguindo a partir das arestas.
// Retorna quantos usuários tinham contadores divergentes.
func (s *FollowService) ReconcileCounters(ctx context.Context) (int, error) {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, id := range ids {
		drifted, err := s.reconcileUser(ctx, id)
		if err != nil {
			return fixed, err
		}
		if drifted {
			fixed++
		}
	}

	if fixed > 0 {
		s.logger.Warn("follow counters reconciled", "users", fixed)
	}
	return fixed, nil
}

func (s *FollowService) reconcileUser(ctx context.Context, userID string) (bool, error) {
	drifted := false
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(txCtx, userID)
		if err != nil || user == nil {
			return err
		}

		followers, err := s.followRepo.CountFollowers(txCtx, userID)
		if err != nil {
			return err
		}
		following, err := s.followRepo.CountFollowing(txCtx, userID)
		if err != nil {
			return err
		}

		if int64(user.Followers) == followers && int64(user.Following) == following {
			return nil
		}

		drifted = true
		s.logger.Warn("follow counters drifted",
			"user_id", userID,
			"followers", user.Followers, "actual_followers", followers,
			"following", user.Following, "actual_following", following,
		)
		return s.userRepo.SetFollowCounters(txCtx, userID, int(followers), int(following))
	})
	return drifted, err
}

func (s *FollowService) ensureUser(ctx context.Context, userID string) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrUserNotFound
	}
	return nil
}
