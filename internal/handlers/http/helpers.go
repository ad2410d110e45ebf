package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/errors"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/handlers/middleware"
)

// requireUser retorna o usuário autenticado ou responde 401
func requireUser(c *gin.Context) (*entities.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		dto.WriteProblem(c, dto.UnauthorizedErrorResponseI18n(c))
		return nil, false
	}
	return user, true
}

// parseDate interpreta uma data no formato dto.DateLayout, em UTC
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.ErrInvalidBirthDate
	}
	return t, nil
}

var errSessionTokenMissing = errors.Wrap(errors.ErrSessionInvalid, middleware.SessionTokenHeader+" header is required")
