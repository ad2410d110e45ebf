package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biabrauna/econsciente-api/internal/infrastructure/i18n"
)

func setupTestI18n(t *testing.T) *i18n.Service {
	t.Helper()

	dir := t.TempDir()
	locales := map[string]string{
		"en.json":    `{"challenge.completed": "Challenge completed"}`,
		"pt-BR.json": `{"challenge.completed": "Desafio concluído"}`,
		"es.json":    `{"challenge.completed": "Desafío completado"}`,
	}
	for name, content := range locales {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	service, err := i18n.NewService(dir, "en")
	require.NoError(t, err)
	return service
}

func detect(t *testing.T, m *I18nMiddleware, target, acceptLanguage string) (string, *httptest.ResponseRecorder, *gin.Context) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	c.Request = req

	m.DetectLanguage()(c)

	lang, exists := c.Get(LanguageContextKey)
	require.True(t, exists, "idioma não foi definido no contexto")
	return lang.(string), w, c
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name           string
		target         string
		acceptLanguage string
		expected       string
	}{
		{"query parameter", "/?lang=pt-BR", "", "pt-BR"},
		{"query parameter sem diferenciar caixa", "/?lang=PT-br", "", "pt-BR"},
		{"query parameter sem região", "/?lang=pt", "", "pt-BR"},
		{"query parameter tem prioridade", "/?lang=pt-BR", "es", "pt-BR"},
		{"query parameter inválido cai no header", "/?lang=fr", "es", "es"},
		{"Accept-Language", "/", "es,en;q=0.9", "es"},
		{"Accept-Language respeita pesos", "/", "en;q=0.2,pt-BR;q=0.8", "pt-BR"},
		{"Accept-Language não suportado", "/", "fr,de;q=0.9", "en"},
		{"sem preferência usa o padrão", "/", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, w, _ := detect(t, m, tt.target, tt.acceptLanguage)
			assert.Equal(t, tt.expected, lang)
			assert.Equal(t, tt.expected, w.Header().Get("Content-Language"))
		})
	}

	t.Run("define serviço i18n no contexto", func(t *testing.T) {
		_, _, c := detect(t, m, "/", "")

		service, exists := c.Get(I18nServiceContextKey)
		require.True(t, exists)
		assert.NotNil(t, service)
	})
}

func TestI18nMiddleware_parseAcceptLanguage(t *testing.T) {
	m := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		acceptLang string
		expected   string
	}{
		{"pt-BR", "pt-BR"},
		{"es,pt-BR;q=0.9,en;q=0.8", "es"},
		{"fr,pt-BR;q=0.9,en;q=0.8", "pt-BR"},
		{"fr,de;q=0.9", ""},
		{"", ""},
		{"pt", "pt-BR"},
		{"es-AR", "es"},
		{"en-US", "en"},
		{";;;", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, m.parseAcceptLanguage(tt.acceptLang), "Accept-Language=%q", tt.acceptLang)
	}
}

func TestI18nMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewI18nMiddleware(setupTestI18n(t))

	router := gin.New()
	router.Use(m.DetectLanguage())
	router.GET("/desafio", func(c *gin.Context) {
		lang := c.GetString(LanguageContextKey)
		service := c.MustGet(I18nServiceContextKey).(*i18n.Service)
		c.JSON(http.StatusOK, gin.H{"message": service.T(lang, "challenge.completed")})
	})

	t.Run("português via query", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/desafio?lang=pt-BR", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Desafio concluído"}`, w.Body.String())
	})

	t.Run("espanhol via Accept-Language", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/desafio", nil)
		req.Header.Set("Accept-Language", "es-MX,es;q=0.9")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Desafío completado"}`, w.Body.String())
	})
}
