package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy remove todo HTML de textos livres (bio, comentários)
var textPolicy = bluemonday.StrictPolicy()

// sanitizeText remove marcação e espaços nas bordas
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}
