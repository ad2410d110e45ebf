package repositories

import (
	"context"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// FindByIDForUpdate bloqueia a linha até o fim da transação corrente
	FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, int64, error)

	// Incrementos atômicos (UPDATE ... SET x = x + ?)
	IncrementPoints(ctx context.Context, id string, delta int) error
	IncrementFollowCounters(ctx context.Context, followerID, followingID string, delta int) error
	SaveOnboarding(ctx context.Context, id string, steps entities.OnboardingSteps, completed bool, pointsDelta int) error
	MarkBioRewarded(ctx context.Context, id string) (bool, error)
	SetFollowCounters(ctx context.Context, id string, followers, following int) error
	ListIDs(ctx context.Context) ([]string, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Search string
	Pagination
}
