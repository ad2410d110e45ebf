package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// NotificationStream promove uma requisição para a conexão de tempo real do usuário
type NotificationStream interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string) error
}

// NotificationHandler lida com a caixa de notificações
type NotificationHandler struct {
	notificationService *services.NotificationService
	stream              NotificationStream
}

// NewNotificationHandler cria um novo NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService, stream NotificationStream) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		stream:              stream,
	}
}

// List retorna as notificações mais recentes
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var query dto.NotificationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	list, err := h.notificationService.ListByUser(c.Request.Context(), user.ID, query.OnlyUnread)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(list))
}

// CountUnread conta as não lidas
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CountResponse{Count: count})
}

// MarkAsRead marca uma notificação como lida
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Message(c, "message.notification_read"))
}

// MarkAllAsRead marca todas como lidas
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.MarkAllAsRead(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Message(c, "message.notifications_read", map[string]interface{}{"Count": count}))
}

// Stream abre o websocket de notificações em tempo real
func (h *NotificationHandler) Stream(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	// Em caso de falha o upgrader já respondeu ao cliente.
	if err := h.stream.Serve(c.Writer, c.Request, user.ID); err != nil {
		_ = c.Error(err)
	}
}
