package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// ProfilePicHandler lida com a foto de perfil do usuário autenticado
type ProfilePicHandler struct {
	profilePicService *services.ProfilePicService
}

// NewProfilePicHandler cria um novo ProfilePicHandler
func NewProfilePicHandler(profilePicService *services.ProfilePicService) *ProfilePicHandler {
	return &ProfilePicHandler{profilePicService: profilePicService}
}

// Upload grava ou substitui a foto de perfil
func (h *ProfilePicHandler) Upload(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.ProfilePicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	pic, err := h.profilePicService.Upload(c.Request.Context(), user.ID, req.URL)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfilePicResponse(pic))
}

// Get retorna a foto de perfil
func (h *ProfilePicHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	pic, err := h.profilePicService.Get(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfilePicResponse(pic))
}
