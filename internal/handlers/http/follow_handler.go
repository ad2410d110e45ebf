package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// FollowHandler lida com o grafo de seguidores
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler cria um novo FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow faz o usuário autenticado seguir :id
func (h *FollowHandler) Follow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.followService.Follow(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FollowStatusResponse{IsFollowing: true})
}

// Unfollow desfaz a relação com :id
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.unfollowed"))
}

// Status informa se o usuário autenticado segue :id
func (h *FollowHandler) Status(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	following, err := h.followService.IsFollowing(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FollowStatusResponse{IsFollowing: following})
}

// Followers lista quem segue :id
func (h *FollowHandler) Followers(c *gin.Context) {
	users, err := h.followService.ListFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFollowUserResponses(users))
}

// Following lista quem :id segue
func (h *FollowHandler) Following(c *gin.Context) {
	users, err := h.followService.ListFollowing(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFollowUserResponses(users))
}
