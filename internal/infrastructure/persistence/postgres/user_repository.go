package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return translateError(err)
	}

	user.CreatedAt = fromMillis(model.CreatedAt)
	user.UpdatedAt = fromMillis(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	return r.findOne(r.getDB(ctx).Where("id = ?", id))
}

func (r *UserRepository) FindByIDForUpdate(ctx context.Context, id string) (*entities.User, error) {
	db := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findOne(db.Where("id = ?", id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(r.getDB(ctx).Where("email = ?", email))
}

func (r *UserRepository) findOne(query *gorm.DB) (*entities.User, error) {
	var model UserModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toEntity(&model)
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update grava apenas os campos de perfil. Pontos, contadores e onboarding
// só mudam pelos incrementos atômicos.
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	return db.Model(&UserModel{ID: user.ID}).
		Select("name", "biography", "birth_date", "role", "updated_at").
		Updates(model).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.getDB(ctx).Where("id = ?", id).Delete(&UserModel{}).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, int64, error) {
	var models []*UserModel
	var total int64

	db := r.getDB(ctx)
	query := db.Model(&UserModel{})

	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Pagination.Normalize()
	err := query.Order("points DESC, created_at ASC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	users, err := r.toEntities(models)
	return users, total, err
}

func (r *UserRepository) IncrementPoints(ctx context.Context, id string, delta int) error {
	return r.getDB(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta)).Error
}

// IncrementFollowCounters ajusta following do seguidor e followers do seguido.
// As linhas são atualizadas em ordem de id, para que follows cruzados
// simultâneos travem as linhas na mesma ordem.
func (r *UserRepository) IncrementFollowCounters(ctx context.Context, followerID, followingID string, delta int) error {
	db := r.getDB(ctx)

	updates := []struct {
		id     string
		column string
	}{
		{followerID, "following"},
		{followingID, "followers"},
	}
	if followingID < followerID {
		updates[0], updates[1] = updates[1], updates[0]
	}

	for _, u := range updates {
		if err := db.Model(&UserModel{}).
			Where("id = ?", u.id).
			UpdateColumn(u.column, gorm.Expr(u.column+" + ?", delta)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) SaveOnboarding(ctx context.Context, id string, steps entities.OnboardingSteps, completed bool, pointsDelta int) error {
	return r.getDB(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"onboarding_steps":     steps.Encode(),
			"onboarding_completed": completed,
			"points":               gorm.Expr("points + ?", pointsDelta),
		}).Error
}

// MarkBioRewarded liga a flag apenas uma vez; retorna true para quem a ligou
func (r *UserRepository) MarkBioRewarded(ctx context.Context, id string) (bool, error) {
	result := r.getDB(ctx).Model(&UserModel{}).
		Where("id = ? AND bio_rewarded = ?", id, false).
		UpdateColumn("bio_rewarded", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepository) SetFollowCounters(ctx context.Context, id string, followers, following int) error {
	return r.getDB(ctx).Model(&UserModel{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"followers": followers, "following": following}).Error
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.getDB(ctx).Model(&UserModel{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	var birthDate *int64
	if user.BirthDate != nil {
		ts := user.BirthDate.Unix()
		birthDate = &ts
	}

	return &UserModel{
		ID:                  user.ID,
		Email:               user.Email.String(),
		Name:                user.Name,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		BirthDate:           birthDate,
		Biography:           user.Biography,
		Points:              user.Points,
		Followers:           user.Followers,
		Following:           user.Following,
		OnboardingCompleted: user.OnboardingCompleted,
		OnboardingSteps:     user.OnboardingSteps.Encode(),
		BioRewarded:         user.BioRewarded,
		CreatedAt:           toMillis(user.CreatedAt),
		UpdatedAt:           toMillis(user.UpdatedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	var birthDate *time.Time
	if model.BirthDate != nil {
		ts := time.Unix(*model.BirthDate, 0).UTC()
		birthDate = &ts
	}

	role, err := entities.ParseRole(model.Role)
	if err != nil {
		return nil, err
	}

	// Blob corrompido equivale a nenhuma etapa concluída
	steps, err := entities.ParseOnboardingSteps(model.OnboardingSteps)
	if err != nil {
		steps = entities.OnboardingSteps{}
	}

	return &entities.User{
		ID:                  model.ID,
		Email:               email,
		Name:                model.Name,
		PasswordHash:        model.PasswordHash,
		Role:                role,
		BirthDate:           birthDate,
		Biography:           model.Biography,
		Points:              model.Points,
		Followers:           model.Followers,
		Following:           model.Following,
		OnboardingCompleted: model.OnboardingCompleted,
		OnboardingSteps:     steps,
		BioRewarded:         model.BioRewarded,
		CreatedAt:           fromMillis(model.CreatedAt),
		UpdatedAt:           fromMillis(model.UpdatedAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, entity)
	}

	return users, nil
}
