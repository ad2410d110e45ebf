package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
)

// NotificationListLimit é o máximo de notificações retornadas por listagem
const NotificationListLimit = 50

// NotificationService cria e consulta notificações
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	publisher        ports.NotificationPublisher
	metrics          ports.GamificationMetrics
	logger           ports.Logger
	retention        time.Duration
}

// NewNotificationService cria um novo NotificationService.
// publisher pode ser nil quando não há entrega em tempo real.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	publisher ports.NotificationPublisher,
	metrics ports.GamificationMetrics,
	logger ports.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		metrics:          metricsOrNop(metrics),
		logger:           logger.With("service", "notification"),
		retention:        entities.NotificationRetention,
	}
}

// WithRetention altera a idade mínima das notificações lidas removidas por CleanOld
func (s *NotificationService) WithRetention(d time.Duration) *NotificationService {
	if d > 0 {
		s.retention = d
	}
	return s
}

// CreateNotificationInput representa os dados de uma notificação
type CreateNotificationInput struct {
	UserID   string
	Type     entities.NotificationType
	Title    string
	Message  string
	Metadata map[string]any
}

// Create grava a notificação e a publica para conexões abertas.
// Metadata que não serializa é descartado com um aviso.
func (s *NotificationService) Create(ctx context.Context, input CreateNotificationInput) (*entities.Notification, error) {
	n := &entities.Notification{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
	}

	if len(input.Metadata) > 0 {
		data, err := json.Marshal(input.Metadata)
		if err != nil {
			s.logger.Warn("dropping invalid notification metadata", "user_id", input.UserID, "error", err)
		} else {
			n.Metadata = string(data)
		}
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.metrics.NotificationCreated(string(n.Type))
	if s.publisher != nil {
		s.publisher.Publish(n)
	}

	return n, nil
}

// ListByUser retorna as notificações mais recentes do usuário
func (s *NotificationService) ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]*entities.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, onlyUnread, NotificationListLimit)
}

// CountUnread conta as notificações não lidas
func (s *NotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkAsRead marca uma notificação do próprio usuário como lida
func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	affected, err := s.notificationRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marca todas as notificações do usuário como lidas
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

// CleanOld remove notificações lidas mais antigas que a retenção
func (s *NotificationService) CleanOld(ctx context.Context, now time.Time) (int64, error) {
	cutoff := now.Add(-s.retention)
	deleted, err := s.notificationRepo.DeleteReadOlderThan(ctx, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	s.logger.Info("old notifications removed", "count", deleted)
	return deleted, nil
}

// NotifyAchievement avisa sobre uma conquista desbloqueada
func (s *NotificationService) NotifyAchievement(ctx context.Context, userID string, achievement *entities.Achievement) error {
	_, err := s.Create(ctx, CreateNotificationInput{
		UserID:   userID,
		Type:     entities.NotificationAchievement,
		Title:    "Nova conquista desbloqueada! 🏆",
		Message:  fmt.Sprintf("Parabéns! Você desbloqueou \"%s\"", achievement.Name),
		Metadata: map[string]any{"conquistaId": achievement.ID},
	})
	return err
}

// NotifyFollower avisa que alguém começou a seguir userID
func (s *NotificationService) NotifyFollower(ctx context.Context, userID string, follower *entities.User) error {
	_, err := s.Create(ctx, CreateNotificationInput{
		UserID:   userID,
		Type:     entities.NotificationFollower,
		Title:    "Novo seguidor! 👥",
		Message:  fmt.Sprintf("%s começou a seguir você", follower.Name),
		Metadata: map[string]any{"followerId": follower.ID},
	})
	return err
}

// NotifyLike avisa o dono do post sobre uma curtida
func (s *NotificationService) NotifyLike(ctx context.Context, ownerID, postID string, liker *entities.User) error {
	_, err := s.Create(ctx, CreateNotificationInput{
		UserID:   ownerID,
		Type:     entities.NotificationLike,
		Title:    "Curtida no seu post! ❤️",
		Message:  fmt.Sprintf("%s curtiu sua publicação", liker.Name),
		Metadata: map[string]any{"postId": postID, "likerId": liker.ID},
	})
	return err
}

// NotifyComment avisa o dono do post sobre um comentário
func (s *NotificationService) NotifyComment(ctx context.Context, ownerID string, comment *entities.Comment) error {
	_, err := s.Create(ctx, CreateNotificationInput{
		UserID:  ownerID,
		Type:    entities.NotificationComment,
		Title:   "Novo comentário",
		Message: fmt.Sprintf("%s comentou no seu post", comment.UserName),
		Metadata: map[string]any{
			"postId":       comment.PostID,
			"comentarioId": comment.ID,
			"userName":     comment.UserName,
		},
	})
	return err
}

// NotifyOnboardingStep avisa sobre uma etapa concluída; o bônus entra na mesma mensagem
func (s *NotificationService) NotifyOnboardingStep(ctx context.Context, userID string, step entities.OnboardingStep, points, bonus int) error {
	message := fmt.Sprintf("Parabéns! Você ganhou +%d pontos!", points)
	if bonus > 0 {
		message += fmt.Sprintf(" E mais +%d pontos bônus por completar o onboarding! 🚀", bonus)
	}

	_, err := s.Create(ctx, CreateNotificationInput{
		UserID:   userID,
		Type:     entities.NotificationOnboarding,
		Title:    fmt.Sprintf("🎉 Etapa Concluída: %s", step.DisplayName()),
		Message:  message,
		Metadata: map[string]any{"step": string(step), "points": points + bonus},
	})
	return err
}
