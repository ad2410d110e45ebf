package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// CommentRepository implementa repositories.CommentRepository
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository cria um novo CommentRepository
func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *entities.Comment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	model := &CommentModel{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		Text:      c.Text,
		CreatedAt: toMillis(c.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	c.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entities.Comment, error) {
	var model CommentModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return commentToEntity(&model), nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*entities.Comment, error) {
	var models []*CommentModel
	if err := dbFromContext(ctx, r.db).Where("post_id = ?", postID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*entities.Comment, 0, len(models))
	for _, m := range models {
		result = append(result, commentToEntity(m))
	}
	return result, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return dbFromContext(ctx, r.db).Where("id = ?", id).Delete(&CommentModel{}).Error
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&CommentModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func commentToEntity(m *CommentModel) *entities.Comment {
	return &entities.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		Text:      m.Text,
		CreatedAt: fromMillis(m.CreatedAt),
	}
}
