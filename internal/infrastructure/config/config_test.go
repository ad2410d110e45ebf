package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("aplica defaults quando só o segredo é informado", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo-de-teste")

		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, "8080", cfg.Server.Port)
		require.Equal(t, 10, cfg.Gamification.PointsPost)
		require.Equal(t, 100, cfg.Gamification.OnboardingProfilePic)
		require.Equal(t, 50, cfg.Gamification.OnboardingBio)
		require.Equal(t, 200, cfg.Gamification.OnboardingChallenge)
		require.Equal(t, 50, cfg.Gamification.OnboardingBonus)
		require.Equal(t, 3, cfg.Tasks.MaxAttempts)
		require.Equal(t, "pt-BR", cfg.I18n.DefaultLanguage)
	})

	t.Run("variáveis de ambiente sobrescrevem defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "segredo-de-teste")
		t.Setenv("POINTS_POST", "25")
		t.Setenv("TASK_WORKERS", "8")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "Text")

		cfg, err := Load()
		require.NoError(t, err)

		require.Equal(t, 25, cfg.Gamification.PointsPost)
		require.Equal(t, 8, cfg.Tasks.Workers)
		require.Equal(t, "debug", cfg.Logging.Level)
		require.Equal(t, "text", cfg.Logging.Format)
	})

	t.Run("erro sem JWT_SECRET", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestCORSConfig_Origins(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: "http://a.com, http://b.com,,"}
	require.Equal(t, []string{"http://a.com", "http://b.com"}, cfg.Origins())
}
