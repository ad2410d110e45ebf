package services

import (
	"context"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// CommentService cuida dos comentários em posts
type CommentService struct {
	commentRepo   repositories.CommentRepository
	postRepo      repositories.PostRepository
	userRepo      repositories.UserRepository
	notifications *NotificationService
	progress      *ProgressTracker
	logger        ports.Logger
}

// NewCommentService cria um novo CommentService
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
	progress *ProgressTracker,
	logger ports.Logger,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		userRepo:      userRepo,
		notifications: notifications,
		progress:      progress,
		logger:        logger.With("service", "comment"),
	}
}

// Create adiciona um comentário com o texto sanitizado
func (s *CommentService) Create(ctx context.Context, postID, userID, text string) (*entities.Comment, error) {
	text = sanitizeText(text)
	if text == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "comment text is empty")
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	comment := &entities.Comment{
		PostID:    postID,
		UserID:    userID,
		UserName:  user.Name,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if post.UserID != userID {
		s.progress.Run("comment.notify", func(taskCtx context.Context) error {
			return s.notifications.NotifyComment(taskCtx, post.UserID, comment)
		})
	}

	return comment, nil
}

// ListByPost lista os comentários do post, mais recentes primeiro
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*entities.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// Remove apaga o comentário. Além do autor, moderadores podem removê-lo.
func (s *CommentService) Remove(ctx context.Context, id, userID string) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return errors.ErrCommentNotFound
	}
	if comment.UserID != userID {
		actor, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if actor == nil || !actor.CanActOn(comment.UserID, entities.PermissionCommentModerate) {
			return errors.ErrForbidden
		}
	}

	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment removed", "comment_id", id, "user_id", userID)
	return nil
}

// Count conta os comentários do post
func (s *CommentService) Count(ctx context.Context, postID string) (int64, error) {
	return s.commentRepo.CountByPost(ctx, postID)
}
