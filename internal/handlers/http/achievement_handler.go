package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// AchievementHandler expõe o catálogo de conquistas e o progresso do usuário
type AchievementHandler struct {
	achievementService *services.AchievementService
}

// NewAchievementHandler cria um novo AchievementHandler
func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// List retorna o catálogo completo
func (h *AchievementHandler) List(c *gin.Context) {
	achievements, err := h.achievementService.List(c.Request.Context())
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAchievementResponses(achievements))
}

// Mine retorna o catálogo com o status de desbloqueio do usuário autenticado
func (h *AchievementHandler) Mine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	h.respondForUser(c, user.ID)
}

// ForUser retorna o catálogo com o status de desbloqueio de outro usuário
func (h *AchievementHandler) ForUser(c *gin.Context) {
	h.respondForUser(c, c.Param("userId"))
}

func (h *AchievementHandler) respondForUser(c *gin.Context, userID string) {
	list, err := h.achievementService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserAchievementResponses(list))
}

// Create adiciona uma conquista ao catálogo (admin)
func (h *AchievementHandler) Create(c *gin.Context) {
	var req dto.CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	achievement, err := h.achievementService.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAchievementResponse(achievement))
}

// Seed cria as conquistas padrão que ainda não existem (admin)
func (h *AchievementHandler) Seed(c *gin.Context) {
	created, err := h.achievementService.SeedCatalog(c.Request.Context())
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SeedResponse{
		Message: dto.T(c, "message.catalog_seeded", map[string]interface{}{"Count": created}),
		Created: created,
	})
}
