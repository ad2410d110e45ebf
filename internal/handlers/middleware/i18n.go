package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/i18n"
)

const (
	LanguageContextKey    = dto.LanguageContextKey
	I18nServiceContextKey = dto.I18nServiceContextKey

	languageQueryParam = "lang"
)

// I18nMiddleware resolve o idioma de cada requisição entre os locales carregados
type I18nMiddleware struct {
	i18nService *i18n.Service
	matcher     language.Matcher
	// languages[i] é o nome do locale da tag i do matcher
	languages []string
}

// NewI18nMiddleware cria o middleware. O idioma padrão ocupa a primeira
// posição do matcher e serve de resposta quando nada combina.
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	fallback := i18nService.GetDefaultLanguage()
	languages := []string{fallback}

	for _, lang := range i18nService.GetSupportedLanguages() {
		if lang != fallback {
			languages = append(languages, lang)
		}
	}

	tags := make([]language.Tag, len(languages))
	for i, lang := range languages {
		tags[i] = language.Make(lang)
	}

	return &I18nMiddleware{
		i18nService: i18nService,
		matcher:     language.NewMatcher(tags),
		languages:   languages,
	}
}

// DetectLanguage define o idioma da requisição, nesta ordem:
// ?lang=, Accept-Language e por fim o idioma padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.fromQuery(c.Query(languageQueryParam))
		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

func (m *I18nMiddleware) fromQuery(value string) string {
	if value == "" {
		return ""
	}
	if m.i18nService.IsLanguageSupported(value) {
		return value
	}
	tag, err := language.Parse(value)
	if err != nil {
		return ""
	}
	return m.match(tag)
}

// parseAcceptLanguage escolhe o melhor locale suportado respeitando os
// pesos q. Ex.: "fr,pt-BR;q=0.9,en;q=0.8" -> "pt-BR"; "pt" -> "pt-BR".
// Retorna "" quando nenhum idioma do header é suportado.
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return m.match(tags...)
}

func (m *I18nMiddleware) match(tags ...language.Tag) string {
	_, index, confidence := m.matcher.Match(tags...)
	if confidence < language.High {
		return ""
	}
	return m.languages[index]
}
