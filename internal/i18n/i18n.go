// Package i18n provides the bilingual translation dictionaries and the
// key-to-template resolution used across the storefront.
package i18n

import (
	"strings"

	"github.com/mohandalborai/ShopSphere/internal/models"
)

// Dictionary maps translation keys to template strings. Templates may
// contain {name}-style placeholders.
type Dictionary map[string]string

// Translator resolves keys against one locale's dictionary.
type Translator struct {
	lang string
	dict Dictionary
}

// NewTranslator returns a translator for lang. Unknown languages fall
// back to English.
func NewTranslator(lang string) *Translator {
	dict, ok := dictionaries[lang]
	if !ok {
		lang = models.LangEnglish
		dict = dictionaries[models.LangEnglish]
	}
	return &Translator{lang: lang, dict: dict}
}

// Language returns the translator's locale.
func (t *Translator) Language() string {
	return t.lang
}

// T resolves key and substitutes {name} placeholders from replacements.
// An unresolved key returns the key itself.
func (t *Translator) T(key string, replacements map[string]string) string {
	text, ok := t.dict[key]
	if !ok {
		text = key
	}
	for placeholder, value := range replacements {
		text = strings.ReplaceAll(text, "{"+placeholder+"}", value)
	}
	return text
}

// Supported reports whether lang has a dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

// DirFor returns the text direction for lang.
func DirFor(lang string) string {
	if lang == models.LangArabic {
		return models.DirRTL
	}
	return models.DirLTR
}
