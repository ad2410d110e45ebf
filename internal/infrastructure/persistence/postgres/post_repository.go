package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	model := &PostModel{
		ID:        post.ID,
		UserID:    post.UserID,
		URL:       post.URL,
		Likes:     post.Likes,
		CreatedAt: toMillis(post.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	post.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entities.Post, error) {
	var model PostModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return postToEntity(&model), nil
}

func (r *PostRepository) List(ctx context.Context, p repositories.Pagination) ([]*entities.Post, error) {
	page := p.Normalize()
	var models []*PostModel
	err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return postsToEntities(models), nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Post, error) {
	var models []*PostModel
	if err := dbFromContext(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return postsToEntities(models), nil
}

func (r *PostRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&PostModel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostRepository) CreateLike(ctx context.Context, like *entities.PostLike) error {
	model := &PostLikeModel{
		ID:        uuid.New().String(),
		PostID:    like.PostID,
		UserID:    like.UserID,
		CreatedAt: toMillis(like.CreatedAt),
	}
	return translateError(dbFromContext(ctx, r.db).Create(model).Error)
}

func (r *PostRepository) DeleteLike(ctx context.Context, postID, userID string) (bool, error) {
	result := dbFromContext(ctx, r.db).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&PostLikeModel{})
	return result.RowsAffected > 0, result.Error
}

func (r *PostRepository) IncrementLikes(ctx context.Context, postID string, delta int) error {
	return dbFromContext(ctx, r.db).Model(&PostModel{}).
		Where("id = ?", postID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func postToEntity(m *PostModel) *entities.Post {
	return &entities.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		URL:       m.URL,
		Likes:     m.Likes,
		CreatedAt: fromMillis(m.CreatedAt),
	}
}

func postsToEntities(models []*PostModel) []*entities.Post {
	result := make([]*entities.Post, 0, len(models))
	for _, m := range models {
		result = append(result, postToEntity(m))
	}
	return result
}
