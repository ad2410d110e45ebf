package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// ProfilePicRepository implementa repositories.ProfilePicRepository
type ProfilePicRepository struct {
	db *gorm.DB
}

// NewProfilePicRepository cria um novo ProfilePicRepository
func NewProfilePicRepository(db *gorm.DB) repositories.ProfilePicRepository {
	return &ProfilePicRepository{db: db}
}

func (r *ProfilePicRepository) FindByUser(ctx context.Context, userID string) (*entities.ProfilePic, error) {
	var model ProfilePicModel
	if err := dbFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.ProfilePic{
		ID:        model.ID,
		UserID:    model.UserID,
		URL:       model.URL,
		CreatedAt: fromMillis(model.CreatedAt),
		UpdatedAt: fromMillis(model.UpdatedAt),
	}, nil
}

// Upsert troca a URL da foto existente ou cria uma nova. Uma criação
// concorrente perde para a unique de user_id e retorna ErrDuplicate.
func (r *ProfilePicRepository) Upsert(ctx context.Context, pic *entities.ProfilePic) (bool, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&ProfilePicModel{}).
		Where("user_id = ?", pic.UserID).
		Updates(map[string]any{"url": pic.URL})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	if pic.ID == "" {
		pic.ID = uuid.New().String()
	}
	model := &ProfilePicModel{ID: pic.ID, UserID: pic.UserID, URL: pic.URL}
	if err := db.Create(model).Error; err != nil {
		return false, translateError(err)
	}
	pic.CreatedAt = fromMillis(model.CreatedAt)
	pic.UpdatedAt = fromMillis(model.UpdatedAt)
	return true, nil
}
