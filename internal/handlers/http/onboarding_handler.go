package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// OnboardingHandler expõe o checklist inicial
type OnboardingHandler struct {
	onboardingService *services.OnboardingService
}

// NewOnboardingHandler cria um novo OnboardingHandler
func NewOnboardingHandler(onboardingService *services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// Status retorna as etapas concluídas e os pontos do usuário
func (h *OnboardingHandler) Status(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	status, err := h.onboardingService.GetStatus(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOnboardingStatusResponse(status))
}

// CompleteStep marca uma etapa manualmente
func (h *OnboardingHandler) CompleteStep(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.CompleteStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	result, err := h.onboardingService.CompleteStepByName(c.Request.Context(), user.ID, req.Step)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStepResultResponse(result))
}
