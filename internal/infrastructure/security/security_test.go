package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/valueobjects"
)

func testUser(t *testing.T) *entities.User {
	t.Helper()
	email, err := valueobjects.NewEmail("ana@example.com")
	require.NoError(t, err)
	return &entities.User{ID: "user-1", Email: email, Name: "Ana", Role: entities.RoleUser}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("senha-forte")
	require.NoError(t, err)
	require.NotEqual(t, "senha-forte", hash)

	t.Run("aceita a senha correta", func(t *testing.T) {
		require.True(t, hasher.Compare(hash, "senha-forte"))
	})

	t.Run("rejeita senha incorreta", func(t *testing.T) {
		require.False(t, hasher.Compare(hash, "outra"))
	})
}

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager("segredo", time.Hour, "econsciente-api")
	user := testUser(t)

	t.Run("emite e valida token", func(t *testing.T) {
		token, expiresAt, err := manager.Issue(user)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

		c, err := manager.Parse(token)
		require.NoError(t, err)
		require.Equal(t, "user-1", c.UserID)
		require.Equal(t, "ana@example.com", c.Email)
		require.Equal(t, entities.RoleUser, c.Role)
	})

	t.Run("rejeita token expirado", func(t *testing.T) {
		expired := NewTokenManager("segredo", time.Hour, "econsciente-api")
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := expired.Issue(user)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejeita token assinado com outro segredo", func(t *testing.T) {
		other := NewTokenManager("outro", time.Hour, "econsciente-api")
		token, _, err := other.Issue(user)
		require.NoError(t, err)

		_, err = manager.Parse(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejeita algoritmo none", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1", Issuer: "econsciente-api"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = manager.Parse(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
