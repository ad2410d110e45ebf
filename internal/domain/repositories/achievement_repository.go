package repositories

import (
	"context"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// AchievementRepository persiste o catálogo de conquistas
type AchievementRepository interface {
	Create(ctx context.Context, achievement *entities.Achievement) error
	FindByID(ctx context.Context, id string) (*entities.Achievement, error)
	FindByName(ctx context.Context, name string) (*entities.Achievement, error)
	List(ctx context.Context) ([]*entities.Achievement, error)
}

// AchievementUnlockRepository persiste desbloqueios (único por usuário+conquista)
type AchievementUnlockRepository interface {
	// Create retorna ErrDuplicate se o par já existir
	Create(ctx context.Context, unlock *entities.AchievementUnlock) error
	Exists(ctx context.Context, userID, achievementID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.AchievementUnlock, error)
	CountByUserAndAchievement(ctx context.Context, userID, achievementID string) (int64, error)
}
