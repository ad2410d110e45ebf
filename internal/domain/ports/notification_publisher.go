package ports

import "github.com/biabrauna/econsciente-api/internal/domain/entities"

// NotificationPublisher entrega notificações recém-criadas a conexões em tempo real
type NotificationPublisher interface {
	Publish(notification *entities.Notification)
}
