package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

// catalog guarda as mensagens de um idioma e os templates já compilados
// das que têm parâmetros ({{.Resource}}, {{.Name}}...).
type catalog struct {
	messages  map[string]string
	templates map[string]*template.Template
}

func newCatalog(data []byte) (*catalog, error) {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}

	c := &catalog{messages: messages, templates: make(map[string]*template.Template)}
	for key, message := range messages {
		if !strings.Contains(message, "{{") {
			continue
		}
		// Template inválido fica de fora e T devolve a mensagem crua
		if tmpl, err := template.New(key).Parse(message); err == nil {
			c.templates[key] = tmpl
		}
	}
	return c, nil
}

func (c *catalog) render(key string, params map[string]interface{}) (string, bool) {
	if c == nil {
		return "", false
	}
	message, ok := c.messages[key]
	if !ok || message == "" {
		return "", false
	}

	tmpl, ok := c.templates[key]
	if !ok || params == nil {
		return message, true
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return message, true
	}
	return buf.String(), true
}

// Service traduz message IDs para os idiomas carregados. Os catálogos são
// imutáveis depois da carga, então o Service pode ser usado concorrentemente.
type Service struct {
	catalogs        map[string]*catalog
	defaultLanguage string
}

// NewService carrega os arquivos <idioma>.json de localesDir
func NewService(localesDir, defaultLang string) (*Service, error) {
	if _, err := os.Stat(localesDir); err != nil {
		return nil, fmt.Errorf("failed to open locales dir: %w", err)
	}
	return NewServiceFS(os.DirFS(localesDir), ".", defaultLang)
}

// NewEmbeddedService usa os locales embutidos no binário
func NewEmbeddedService(defaultLang string) (*Service, error) {
	return NewServiceFS(embeddedLocales, "locales", defaultLang)
}

// NewServiceFS carrega todos os *.json de dir dentro de fsys
func NewServiceFS(fsys fs.FS, dir, defaultLang string) (*Service, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files found in %s", dir)
	}

	s := &Service{
		catalogs:        make(map[string]*catalog, len(files)),
		defaultLanguage: defaultLang,
	}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file, err)
		}
		c, err := newCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file, err)
		}
		s.catalogs[strings.TrimSuffix(path.Base(file), ".json")] = c
	}

	if _, ok := s.catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %s not found in locale files", defaultLang)
	}
	return s, nil
}

// T traduz key para lang, caindo no idioma padrão e por fim na própria key.
// params, quando presente, alimenta o template da mensagem.
func (s *Service) T(lang, key string, params ...map[string]interface{}) string {
	var data map[string]interface{}
	if len(params) > 0 {
		data = params[0]
	}

	if message, ok := s.catalogs[lang].render(key, data); ok {
		return message
	}
	if message, ok := s.catalogs[s.defaultLanguage].render(key, data); ok {
		return message
	}
	return key
}

// Has informa se a chave existe no idioma padrão
func (s *Service) Has(key string) bool {
	_, ok := s.catalogs[s.defaultLanguage].messages[key]
	return ok
}

// MissingKeys lista, em ordem, as chaves do idioma padrão ausentes em lang.
// Usado no boot para apontar locales desatualizados.
func (s *Service) MissingKeys(lang string) []string {
	var target map[string]string
	if c, ok := s.catalogs[lang]; ok {
		target = c.messages
	}

	var missing []string
	for key := range s.catalogs[s.defaultLanguage].messages {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func (s *Service) GetDefaultLanguage() string {
	return s.defaultLanguage
}

// GetSupportedLanguages retorna os idiomas carregados em ordem alfabética
func (s *Service) GetSupportedLanguages() []string {
	langs := make([]string, 0, len(s.catalogs))
	for lang := range s.catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (s *Service) IsLanguageSupported(lang string) bool {
	_, ok := s.catalogs[lang]
	return ok
}
