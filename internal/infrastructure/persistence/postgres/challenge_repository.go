package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// ChallengeRepository implementa repositories.ChallengeRepository
type ChallengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository cria um novo ChallengeRepository
func NewChallengeRepository(db *gorm.DB) repositories.ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Create(ctx context.Context, c *entities.Challenge) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	model := &ChallengeModel{
		ID:          c.ID,
		Description: c.Description,
		Value:       c.Value,
		CreatedAt:   toMillis(c.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	c.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*entities.Challenge, error) {
	var model ChallengeModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return challengeToEntity(&model), nil
}

func (r *ChallengeRepository) List(ctx context.Context) ([]*entities.Challenge, error) {
	return r.find(dbFromContext(ctx, r.db))
}

// Search filtra pela descrição, sem diferenciar maiúsculas
func (r *ChallengeRepository) Search(ctx context.Context, term string) ([]*entities.Challenge, error) {
	query := dbFromContext(ctx, r.db).Where("LOWER(description) LIKE LOWER(?)", "%"+term+"%")
	return r.find(query)
}

func (r *ChallengeRepository) find(query *gorm.DB) ([]*entities.Challenge, error) {
	var models []*ChallengeModel
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Challenge, 0, len(models))
	for _, m := range models {
		result = append(result, challengeToEntity(m))
	}
	return result, nil
}

func (r *ChallengeRepository) CreateCompletion(ctx context.Context, c *entities.CompletedChallenge) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	model := &CompletedChallengeModel{
		ID:          c.ID,
		UserID:      c.UserID,
		ChallengeID: c.ChallengeID,
		CreatedAt:   toMillis(c.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err)
	}
	c.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *ChallengeRepository) CountCompletedByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&CompletedChallengeModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListCompletedByUser retorna os desafios concluídos, mais recentes primeiro
func (r *ChallengeRepository) ListCompletedByUser(ctx context.Context, userID string) ([]*entities.Challenge, error) {
	var models []*ChallengeModel
	err := dbFromContext(ctx, r.db).
		Joins("JOIN completed_challenges ON completed_challenges.challenge_id = challenges.id").
		Where("completed_challenges.user_id = ?", userID).
		Order("completed_challenges.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	result := make([]*entities.Challenge, 0, len(models))
	for _, m := range models {
		result = append(result, challengeToEntity(m))
	}
	return result, nil
}

func challengeToEntity(m *ChallengeModel) *entities.Challenge {
	return &entities.Challenge{
		ID:          m.ID,
		Description: m.Description,
		Value:       m.Value,
		CreatedAt:   fromMillis(m.CreatedAt),
	}
}
