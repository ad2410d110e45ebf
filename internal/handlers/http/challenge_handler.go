package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// ChallengeHandler lida com desafios e conclusões
type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

// NewChallengeHandler cria um novo ChallengeHandler
func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// Create cadastra um desafio (admin)
func (h *ChallengeHandler) Create(c *gin.Context) {
	var req dto.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	challenge, err := h.challengeService.Create(c.Request.Context(), req.Desafios, req.Valor)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChallengeResponse(challenge))
}

// List retorna todos os desafios
func (h *ChallengeHandler) List(c *gin.Context) {
	challenges, err := h.challengeService.List(c.Request.Context())
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChallengeResponses(challenges))
}

// Search busca desafios pela descrição
func (h *ChallengeHandler) Search(c *gin.Context) {
	var query dto.SearchChallengesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	challenges, err := h.challengeService.Search(c.Request.Context(), query.Q)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChallengeResponses(challenges))
}

// Complete registra a conclusão do desafio pelo usuário autenticado
func (h *ChallengeHandler) Complete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	challenge, err := h.challengeService.Complete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChallengeResponse(challenge))
}

// Completed lista os desafios concluídos pelo usuário autenticado
func (h *ChallengeHandler) Completed(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	challenges, err := h.challengeService.ListCompleted(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChallengeResponses(challenges))
}
