package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// SessionRepository implementa repositories.SessionRepository.
// Os instantes recebidos como int64 são unix millis.
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository cria um novo SessionRepository
func NewSessionRepository(db *gorm.DB) repositories.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *entities.Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	model := &SessionModel{
		ID:           s.ID,
		UserID:       s.UserID,
		Token:        s.Token,
		IPAddress:    s.IPAddress,
		UserAgent:    s.UserAgent,
		LastActivity: toMillis(s.LastActivity),
		ExpiresAt:    toMillis(s.ExpiresAt),
		IsActive:     s.IsActive,
		CreatedAt:    toMillis(s.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return translateError(err)
	}
	s.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*entities.Session, error) {
	var model SessionModel
	if err := dbFromContext(ctx, r.db).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sessionToEntity(&model), nil
}

func (r *SessionRepository) Touch(ctx context.Context, token string, at int64) error {
	return dbFromContext(ctx, r.db).Model(&SessionModel{}).
		Where("token = ?", token).
		UpdateColumn("last_activity", at).Error
}

func (r *SessionRepository) Invalidate(ctx context.Context, token string) error {
	return dbFromContext(ctx, r.db).Model(&SessionModel{}).
		Where("token = ?", token).
		UpdateColumn("is_active", false).Error
}

func (r *SessionRepository) InvalidateAllForUser(ctx context.Context, userID string) error {
	return dbFromContext(ctx, r.db).Model(&SessionModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		UpdateColumn("is_active", false).Error
}

func (r *SessionRepository) ListActive(ctx context.Context, userID string, now int64) ([]*entities.Session, error) {
	var models []*SessionModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, now).
		Order("last_activity DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Session, 0, len(models))
	for _, m := range models {
		result = append(result, sessionToEntity(m))
	}
	return result, nil
}

// DeleteExpired remove sessões expiradas ou invalidadas
func (r *SessionRepository) DeleteExpired(ctx context.Context, now int64) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("expires_at < ? OR is_active = ?", now, false).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}

func sessionToEntity(m *SessionModel) *entities.Session {
	return &entities.Session{
		ID:           m.ID,
		UserID:       m.UserID,
		Token:        m.Token,
		IPAddress:    m.IPAddress,
		UserAgent:    m.UserAgent,
		LastActivity: fromMillis(m.LastActivity),
		ExpiresAt:    fromMillis(m.ExpiresAt),
		IsActive:     m.IsActive,
		CreatedAt:    fromMillis(m.CreatedAt),
	}
}
