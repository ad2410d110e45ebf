package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// NotificationRepository implementa repositories.NotificationRepository
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository cria um novo NotificationRepository
func NewNotificationRepository(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	var metadata *string
	if n.Metadata != "" {
		metadata = &n.Metadata
	}

	model := &NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		Metadata:  metadata,
		CreatedAt: toMillis(n.CreatedAt),
	}
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	n.CreatedAt = fromMillis(model.CreatedAt)
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, onlyUnread bool, limit int) ([]*entities.Notification, error) {
	query := dbFromContext(ctx, r.db).Where("user_id = ?", userID)
	if onlyUnread {
		query = query.Where("read = ?", false)
	}

	var models []*NotificationModel
	if err := query.Order("created_at DESC").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}

	result := make([]*entities.Notification, 0, len(models))
	for _, m := range models {
		n := &entities.Notification{
			ID:        m.ID,
			UserID:    m.UserID,
			Type:      entities.NotificationType(m.Type),
			Title:     m.Title,
			Message:   m.Message,
			Read:      m.Read,
			CreatedAt: fromMillis(m.CreatedAt),
		}
		if m.Metadata != nil {
			n.Metadata = *m.Metadata
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID string) (int64, error) {
	result := dbFromContext(ctx, r.db).Model(&NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("read", true)
	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	result := dbFromContext(ctx, r.db).Model(&NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		UpdateColumn("read", true)
	return result.RowsAffected, result.Error
}

// DeleteReadOlderThan remove notificações lidas criadas antes de cutoff (unix millis)
func (r *NotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&NotificationModel{})
	return result.RowsAffected, result.Error
}
