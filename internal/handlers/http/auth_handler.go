package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/handlers/middleware"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// AuthHandler lida com cadastro, login e sessões
type AuthHandler struct {
	authService    *services.AuthService
	sessionService *services.SessionService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, sessionService *services.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

// Register cadastra um novo usuário
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:           req.Email,
		Name:            req.Name,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		BirthDate:       birthDate,
		Biography:       req.Biografia,
	})
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login autentica o usuário e abre uma sessão
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.WriteBindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken:  result.AccessToken,
		TokenType:    "Bearer",
		ExpiresAt:    result.ExpiresAt,
		SessionToken: result.Session.Token,
		User:         dto.ToUserResponse(result.User),
	})
}

// Logout encerra todas as sessões do usuário
func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.logged_out"))
}

// Me retorna o usuário autenticado
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{
		UserResponse: dto.ToUserResponse(user),
		Permissions:  user.PermissionNames(),
	})
}

// ListSessions lista as sessões ativas do usuário
func (h *AuthHandler) ListSessions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListActive(c.Request.Context(), user.ID)
	if err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionResponses(sessions))
}

// RevokeCurrentSession invalida a sessão enviada no header X-Session-Token
func (h *AuthHandler) RevokeCurrentSession(c *gin.Context) {
	token := c.GetHeader(middleware.SessionTokenHeader)
	if token == "" {
		dto.WriteError(c, errSessionTokenMissing)
		return
	}

	if err := h.sessionService.Invalidate(c.Request.Context(), token); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.session_revoked"))
}

// RevokeAllSessions invalida todas as sessões do usuário
func (h *AuthHandler) RevokeAllSessions(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.sessionService.InvalidateAll(c.Request.Context(), user.ID); err != nil {
		dto.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Message(c, "message.logged_out"))
}
