package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

const listKey = "catalog:all"

// AchievementCatalog decora um AchievementRepository com cache LRU com TTL.
// O catálogo só muda por Create, que invalida todas as entradas.
type AchievementCatalog struct {
	next repositories.AchievementRepository
	lru  *expirable.LRU[string, any]
}

var _ repositories.AchievementRepository = (*AchievementCatalog)(nil)

// NewAchievementCatalog cria o cache com capacidade size
func NewAchievementCatalog(next repositories.AchievementRepository, size int, ttl time.Duration) (*AchievementCatalog, error) {
	if size <= 0 {
		return nil, fmt.Errorf("failed to create catalog cache: size must be positive, got %d", size)
	}
	return &AchievementCatalog{next: next, lru: expirable.NewLRU[string, any](size, nil, ttl)}, nil
}

func (c *AchievementCatalog) Create(ctx context.Context, achievement *entities.Achievement) error {
	if err := c.next.Create(ctx, achievement); err != nil {
		return err
	}
	c.Purge()
	return nil
}

func (c *AchievementCatalog) FindByID(ctx context.Context, id string) (*entities.Achievement, error) {
	key := "id:" + id
	if v, ok := c.get(key); ok {
		return v.(*entities.Achievement), nil
	}

	a, err := c.next.FindByID(ctx, id)
	if err != nil || a == nil {
		return a, err
	}
	c.set(key, a)
	return a, nil
}

func (c *AchievementCatalog) FindByName(ctx context.Context, name string) (*entities.Achievement, error) {
	return c.next.FindByName(ctx, name)
}

func (c *AchievementCatalog) List(ctx context.Context) ([]*entities.Achievement, error) {
	if v, ok := c.get(listKey); ok {
		cached := v.([]*entities.Achievement)
		return append([]*entities.Achievement(nil), cached...), nil
	}

	list, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(listKey, append([]*entities.Achievement(nil), list...))
	return list, nil
}

// Purge descarta todas as entradas
func (c *AchievementCatalog) Purge() {
	c.lru.Purge()
}

func (c *AchievementCatalog) get(key string) (any, bool) {
	return c.lru.Get(key)
}

func (c *AchievementCatalog) set(key string, value any) {
	c.lru.Add(key, value)
}
