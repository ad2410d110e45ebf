package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// AchievementRepository implementa repositories.AchievementRepository
type AchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository cria um novo AchievementRepository
func NewAchievementRepository(db *gorm.DB) repositories.AchievementRepository {
	return &AchievementRepository{db: db}
}

func (r *AchievementRepository) Create(ctx context.Context, achievement *entities.Achievement) error {
	if achievement.ID == "" {
		achievement.ID = uuid.New().String()
	}
	model := &AchievementModel{
		ID:           achievement.ID,
		Name:         achievement.Name,
		Description:  achievement.Description,
		Icon:         achievement.Icon,
		Category:     achievement.Category,
		Criterion:    achievement.Criterion,
		RewardPoints: achievement.RewardPoints,
		CreatedAt:    toMillis(achievement.CreatedAt),
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err)
	}

	achievement.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *AchievementRepository) FindByID(ctx context.Context, id string) (*entities.Achievement, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *AchievementRepository) FindByName(ctx context.Context, name string) (*entities.Achievement, error) {
	return r.findOne(dbFromContext(ctx, r.db).Where("name = ?", name))
}

func (r *AchievementRepository) findOne(query *gorm.DB) (*entities.Achievement, error) {
	var model AchievementModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return achievementToEntity(&model), nil
}

func (r *AchievementRepository) List(ctx context.Context) ([]*entities.Achievement, error) {
	var models []*AchievementModel
	if err := dbFromContext(ctx, r.db).Order("category ASC, created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entities.Achievement, 0, len(models))
	for _, m := range models {
		result = append(result, achievementToEntity(m))
	}
	return result, nil
}

func achievementToEntity(m *AchievementModel) *entities.Achievement {
	return &entities.Achievement{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Icon:         m.Icon,
		Category:     m.Category,
		Criterion:    m.Criterion,
		RewardPoints: m.RewardPoints,
		CreatedAt:    fromMillis(m.CreatedAt),
	}
}

// AchievementUnlockRepository implementa repositories.AchievementUnlockRepository
type AchievementUnlockRepository struct {
	db *gorm.DB
}

// NewAchievementUnlockRepository cria um novo AchievementUnlockRepository
func NewAchievementUnlockRepository(db *gorm.DB) repositories.AchievementUnlockRepository {
	return &AchievementUnlockRepository{db: db}
}

func (r *AchievementUnlockRepository) Create(ctx context.Context, unlock *entities.AchievementUnlock) error {
	model := &AchievementUnlockModel{
		ID:            uuid.New().String(),
		UserID:        unlock.UserID,
		AchievementID: unlock.AchievementID,
		UnlockedAt:    toMillis(unlock.UnlockedAt),
	}
	return translateError(dbFromContext(ctx, r.db).Create(model).Error)
}

func (r *AchievementUnlockRepository) Exists(ctx context.Context, userID, achievementID string) (bool, error) {
	count, err := r.CountByUserAndAchievement(ctx, userID, achievementID)
	return count > 0, err
}

func (r *AchievementUnlockRepository) CountByUserAndAchievement(ctx context.Context, userID, achievementID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&AchievementUnlockModel{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count, err
}

func (r *AchievementUnlockRepository) ListByUser(ctx context.Context, userID string) ([]*entities.AchievementUnlock, error) {
	var models []*AchievementUnlockModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entities.AchievementUnlock, 0, len(models))
	for _, m := range models {
		result = append(result, &entities.AchievementUnlock{
			UserID:        m.UserID,
			AchievementID: m.AchievementID,
			UnlockedAt:    fromMillis(m.UnlockedAt),
		})
	}
	return result, nil
}
