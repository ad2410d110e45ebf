package dto

import (
	"encoding/json"
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// FollowStatusResponse informa se o usuário autenticado segue o alvo
type FollowStatusResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

// FollowUserResponse é a projeção de um usuário em listas de seguidores
type FollowUserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Pontos     int    `json:"pontos"`
	Seguidores int    `json:"seguidores"`
	Seguindo   int    `json:"seguindo"`
}

// ToFollowUserResponses converte uma lista de usuários
func ToFollowUserResponses(users []*entities.User) []FollowUserResponse {
	responses := make([]FollowUserResponse, len(users))
	for i, u := range users {
		responses[i] = FollowUserResponse{
			ID:         u.ID,
			Name:       u.Name,
			Pontos:     u.Points,
			Seguidores: u.Followers,
			Seguindo:   u.Following,
		}
	}
	return responses
}

// NotificationQuery filtra a listagem de notificações
type NotificationQuery struct {
	OnlyUnread bool `form:"onlyUnread"`
}

// NotificationResponse representa uma notificação
type NotificationResponse struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Titulo    string          `json:"titulo"`
	Mensagem  string          `json:"mensagem"`
	Lida      bool            `json:"lida"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToNotificationResponses converte notificações para resposta
func ToNotificationResponses(list []*entities.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(list))
	for i, n := range list {
		r := NotificationResponse{
			ID:        n.ID,
			Tipo:      string(n.Type),
			Titulo:    n.Title,
			Mensagem:  n.Message,
			Lida:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if n.Metadata != "" {
			r.Metadata = json.RawMessage(n.Metadata)
		}
		responses[i] = r
	}
	return responses
}
