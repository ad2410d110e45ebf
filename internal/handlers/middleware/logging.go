package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
)

// RequestIDHeader propaga o ID de correlação da requisição
const RequestIDHeader = "X-Request-ID"

// RequestLogger registra cada requisição com status, duração e erros anexados
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	log := logger.With("component", "http")

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if user, ok := CurrentUser(c); ok {
			args = append(args, "user_id", user.ID)
		}

		switch {
		case len(c.Errors) > 0:
			log.Error("request failed", append(args, "error", c.Errors.String())...)
		case c.Writer.Status() >= 500:
			log.Error("request completed", args...)
		default:
			log.Info("request completed", args...)
		}
	}
}

// Recovery converte panics em 500 no formato RFC 7807
func Recovery(logger ports.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		dto.WriteProblem(c, dto.InternalErrorResponseI18n(c))
	})
}
