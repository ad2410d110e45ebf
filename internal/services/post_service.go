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

// PostService cuida de publicações e curtidas
type PostService struct {
	postRepo      repositories.PostRepository
	userRepo      repositories.UserRepository
	notifications *NotificationService
	progress      *ProgressTracker
	uow           ports.UnitOfWork
	points        PointValues
	metrics       ports.GamificationMetrics
	logger        ports.Logger
}

// NewPostService cria um novo PostService
func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
	progress *ProgressTracker,
	uow ports.UnitOfWork,
	points PointValues,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *PostService {
	return &PostService{
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
		progress:      progress,
		uow:           uow,
		points:        points,
		metrics:       metricsOrNop(metrics),
		logger:        logger.With("service", "post"),
	}
}

// Create publica o post e concede PointValues.Post na mesma transação
func (s *PostService) Create(ctx context.Context, userID, rawURL string) (*entities.Post, error) {
	postURL, err := validateImageURL(rawURL)
	if err != nil {
		return nil, err
	}
	post := &entities.Post{UserID: userID, URL: postURL, CreatedAt: time.Now().UTC()}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.userRepo.Exists(txCtx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.ErrUserNotFound
		}

		if err := s.postRepo.Create(txCtx, post); err != nil {
			return err
		}
		return s.userRepo.IncrementPoints(txCtx, userID, s.points.Post)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.PointsAwarded(SourcePost, s.points.Post)
	s.logger.Info("post created", "post_id", post.ID, "user_id", userID)

	s.progress.Track(userID, Progress{
		Actions: []entities.Action{entities.ActionCreatePost, entities.ActionEarnPoints},
	})
	return post, nil
}

// Get busca um post
func (s *PostService) Get(ctx context.Context, id string) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	return post, nil
}

// List retorna o feed paginado, mais recentes primeiro
func (s *PostService) List(ctx context.Context, page repositories.Pagination) ([]*entities.Post, error) {
	return s.postRepo.List(ctx, page)
}

// ListByUser retorna os posts de um usuário
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

// Like registra a curtida e incrementa o contador do post
func (s *PostService) Like(ctx context.Context, postID, userID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		like := &entities.PostLike{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()}
		if err := s.postRepo.CreateLike(txCtx, like); err != nil {
			if errs.Is(err, repositories.ErrDuplicate) {
				return errors.ErrAlreadyLiked
			}
			return err
		}
		return s.postRepo.IncrementLikes(txCtx, postID, 1)
	})
	if err != nil {
		return err
	}

	if post.UserID != userID {
		s.progress.Run("post.notify_like", func(taskCtx context.Context) error {
			liker, err := s.userRepo.FindByID(taskCtx, userID)
			if err != nil || liker == nil {
				return err
			}
			return s.notifications.NotifyLike(taskCtx, post.UserID, postID, liker)
		})
	}
	s.progress.Track(userID, Progress{Actions: []entities.Action{entities.ActionLikePost}})

	return nil
}

// Unlike remove a curtida
func (s *PostService) Unlike(ctx context.Context, postID, userID string) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		removed, err := s.postRepo.DeleteLike(txCtx, postID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return errors.ErrNotLiked
		}
		return s.postRepo.IncrementLikes(txCtx, postID, -1)
	})
}
