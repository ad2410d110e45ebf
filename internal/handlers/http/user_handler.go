package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/domain/repositories"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetUser busca um usuário por ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários com paginação e busca por nome
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.ListUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	filters := repositories.UserFilters{
		Search:     query.Search,
		Pagination: repositories.Pagination{Page: query.Page, PageSize: query.Limit}.Normalize(),
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedResponse[dto.UserResponse]{
		Data:     dto.ToUserResponses(users),
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

// UpdateUser atualiza nome, biografia e data de nascimento.
// Somente o próprio usuário ou um admin pode editar.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	input := services.UpdateProfileInput{
		Name:      req.Name,
		Biography: req.Biografia,
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			dto.WriteError(c, err)
			return
		}
		input.BirthDate = &birthDate
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor.ID, c.Param("id"), input)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove o usuário e suas relações de seguidores
func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
