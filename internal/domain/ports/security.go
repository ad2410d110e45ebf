package ports

import (
	"time"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
)

// PasswordHasher abstrai o algoritmo de hash de senhas
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenClaims são os dados extraídos de um token de acesso válido
type TokenClaims struct {
	UserID string
	Email  string
	Role   entities.Role
}

// TokenIssuer emite e valida tokens de acesso
type TokenIssuer interface {
	Issue(user *entities.User) (token string, expiresAt time.Time, err error)
	Parse(token string) (*TokenClaims, error)
}
