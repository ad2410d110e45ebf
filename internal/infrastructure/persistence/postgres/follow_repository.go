package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// FollowRepository implementa repositories.FollowRepository
type FollowRepository struct {
	db    *gorm.DB
	users *UserRepository
}

// NewFollowRepository cria um novo FollowRepository
func NewFollowRepository(db *gorm.DB) repositories.FollowRepository {
	return &FollowRepository{db: db, users: &UserRepository{db: db}}
}

func (r *FollowRepository) Create(ctx context.Context, follow *entities.Follow) error {
	if follow.ID == "" {
		follow.ID = uuid.New().String()
	}
	model := &FollowModel{
		ID:          follow.ID,
		FollowerID:  follow.FollowerID,
		FollowingID: follow.FollowingID,
		CreatedAt:   toMillis(follow.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err)
	}
	follow.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	result := dbFromContext(ctx, r.db).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&FollowModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// ListFollowers retorna quem segue userID, mais recentes primeiro
func (r *FollowRepository) ListFollowers(ctx context.Context, userID string) ([]*entities.User, error) {
	return r.listUsers(ctx, "follows.follower_id", "follows.following_id = ?", userID)
}

// ListFollowing retorna quem userID segue, mais recentes primeiro
func (r *FollowRepository) ListFollowing(ctx context.Context, userID string) ([]*entities.User, error) {
	return r.listUsers(ctx, "follows.following_id", "follows.follower_id = ?", userID)
}

func (r *FollowRepository) listUsers(ctx context.Context, joinColumn, where, userID string) ([]*entities.User, error) {
	var models []*UserModel
	err := dbFromContext(ctx, r.db).
		Model(&UserModel{}).
		Joins("JOIN follows ON users.id = "+joinColumn).
		Where(where, userID).
		Order("follows.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.users.toEntities(models)
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&FollowModel{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&FollowModel{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
