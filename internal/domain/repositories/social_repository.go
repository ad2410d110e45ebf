package repositories

import (
	"context"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// FollowRepository persiste as arestas do grafo social
type FollowRepository interface {
	// Create retorna ErrDuplicate se a aresta já existir
	Create(ctx context.Context, follow *entities.Follow) error
	// Delete retorna false se a aresta não existia
	Delete(ctx context.Context, followerID, followingID string) (bool, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]*entities.User, error)
	ListFollowing(ctx context.Context, userID string) ([]*entities.User, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

// NotificationRepository persiste notificações
type NotificationRepository interface {
	Create(ctx context.Context, notification *entities.Notification) error
	ListByUser(ctx context.Context, userID string, onlyUnread bool, limit int) ([]*entities.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkAsRead só afeta notificações do próprio usuário
	MarkAsRead(ctx context.Context, id, userID string) (int64, error)
	MarkAllAsRead(ctx context.Context, userID string) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff int64) (int64, error)
}

// SessionRepository persiste sessões server-side
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByToken(ctx context.Context, token string) (*entities.Session, error)
	Touch(ctx context.Context, token string, at int64) error
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID string) error
	ListActive(ctx context.Context, userID string, now int64) ([]*entities.Session, error)
	DeleteExpired(ctx context.Context, now int64) (int64, error)
}
