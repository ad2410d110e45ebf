package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/services"
)

const (
	// SessionTokenHeader carrega o token de sessão server-side
	SessionTokenHeader = "X-Session-Token"
	// UserContextKey guarda o *entities.User autenticado
	UserContextKey = "current_user"
)

// Authenticator valida JWT ou token de sessão
type Authenticator struct {
	auth *services.AuthService
}

// NewAuthenticator cria um novo Authenticator
func NewAuthenticator(auth *services.AuthService) *Authenticator {
	return &Authenticator{auth: auth}
}

// RequireAuth aceita "Authorization: Bearer <jwt>" ou o header X-Session-Token.
// Para o websocket, que não envia headers, aceita também ?token=<jwt>.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			user *entities.User
			err  error
		)
		switch {
		case bearerToken(c) != "":
			user, err = a.auth.Authenticate(ctx, bearerToken(c))
		case c.GetHeader(SessionTokenHeader) != "":
			user, err = a.auth.AuthenticateSession(ctx, c.GetHeader(SessionTokenHeader))
		case c.Query("token") != "" && websocketUpgrade(c):
			user, err = a.auth.Authenticate(ctx, c.Query("token"))
		default:
			err = errors.ErrUnauthorized
		}

		if err != nil {
			if errors.KindOf(err) == errors.KindInternal {
				dto.WriteError(c, err)
				return
			}
			dto.WriteProblem(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequirePermission exige que o usuário autenticado tenha a permissão
func RequirePermission(permission entities.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			dto.WriteProblem(c, dto.UnauthorizedErrorResponseI18n(c))
			return
		}
		if !user.HasPermission(permission) {
			dto.WriteProblem(c, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado pela requisição
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok && user != nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func websocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}
