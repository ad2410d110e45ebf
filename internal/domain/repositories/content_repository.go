package repositories

import (
	"context"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// PostRepository persiste posts e curtidas
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id string) (*entities.Post, error)
	List(ctx context.Context, p Pagination) ([]*entities.Post, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Post, error)
	CountByUser(ctx context.Context, userID string) (int64, error)

	// CreateLike retorna ErrDuplicate se o usuário já curtiu o post
	CreateLike(ctx context.Context, like *entities.PostLike) error
	DeleteLike(ctx context.Context, postID, userID string) (bool, error)
	IncrementLikes(ctx context.Context, postID string, delta int) error
}

// CommentRepository persiste comentários
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.Comment) error
	FindByID(ctx context.Context, id string) (*entities.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*entities.Comment, error)
	Delete(ctx context.Context, id string) error
	CountByPost(ctx context.Context, postID string) (int64, error)
}

// ProfilePicRepository persiste a foto de perfil (uma por usuário)
type ProfilePicRepository interface {
	FindByUser(ctx context.Context, userID string) (*entities.ProfilePic, error)
	// Upsert retorna true quando a foto foi criada (não existia antes)
	Upsert(ctx context.Context, pic *entities.ProfilePic) (bool, error)
}

// ChallengeRepository persiste desafios e conclusões
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *entities.Challenge) error
	FindByID(ctx context.Context, id string) (*entities.Challenge, error)
	List(ctx context.Context) ([]*entities.Challenge, error)
	Search(ctx context.Context, term string) ([]*entities.Challenge, error)

	// CreateCompletion retorna ErrDuplicate se o usuário já concluiu o desafio
	CreateCompletion(ctx context.Context, completion *entities.CompletedChallenge) error
	CountCompletedByUser(ctx context.Context, userID string) (int64, error)
	ListCompletedByUser(ctx context.Context, userID string) ([]*entities.Challenge, error)
}
