package entities

import "time"

// NotificationType classifica a origem da notificação
type NotificationType string

const (
	NotificationAchievement NotificationType = "conquista"
	NotificationFollower    NotificationType = "seguidor"
	NotificationLike        NotificationType = "like"
	NotificationComment     NotificationType = "comentario"
	NotificationOnboarding  NotificationType = "onboarding"
)

// NotificationRetention é a idade a partir da qual notificações lidas são removidas
const NotificationRetention = 30 * 24 * time.Hour

// Notification é um registro append-only destinado a um usuário
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	Metadata  string // JSON opcional
	CreatedAt time.Time
}
