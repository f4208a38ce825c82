// Package i18n resolves the dashboard language for a request and translates
// password policy copy. English text doubles as the message key, so a tag
// without a translation falls back to the canonical labels.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"archject/internal/security/password"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "archject_lang"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)
var supportedTagSet = make(map[string]language.Tag, len(supportedTags))

var translations = map[string]map[string]string{
	"pt-BR": {
		"Very weak":             "Muito fraca",
		"Weak":                  "Fraca",
		"Fair":                  "Razoável",
		"Good":                  "Boa",
		"Strong":                "Forte",
		"At least 8 characters": "Pelo menos 8 caracteres",
		"One uppercase letter":  "Uma letra maiúscula",
		"One lowercase letter":  "Uma letra minúscula",
		"One number":            "Um número",
		"One special character": "Um caractere especial",
	},
}

func init() {
	for _, tag := range supportedTags {
		supportedTagSet[tag.String()] = tag
	}
	for locale, entries := range translations {
		tag := language.MustParse(locale)
		for key, msg := range entries {
			if err := message.SetString(tag, literal(key), literal(msg)); err != nil {
				panic(err)
			}
		}
	}
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// ParseTag maps value onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	parsed, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Tag{}, false
	}
	if tag, ok := supportedTagSet[parsed.String()]; ok {
		return tag, true
	}
	return language.Tag{}, false
}

// ResolveTag determines the best language tag for the request, falling back
// to fallback when nothing on the request matches.
func ResolveTag(r *http.Request, fallback language.Tag) language.Tag {
	if r == nil {
		return fallback
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, idx, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				return supportedTags[idx]
			}
		}
	}

	return fallback
}

// Text translates a single canonical English string.
func Text(tag language.Tag, key string) string {
	return translate(message.NewPrinter(tag), key)
}

// translate looks key up as a literal; the printer treats catalog keys and
// messages as format strings.
func translate(p *message.Printer, key string) string {
	return p.Sprintf(literal(key))
}

func literal(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}

// Localize returns a copy of result with its strength and check labels
// translated for tag.
func Localize(tag language.Tag, result password.StrengthResult) password.StrengthResult {
	p := message.NewPrinter(tag)
	out := result
	out.Label = translate(p, result.Label)
	out.Checks = make([]password.Check, len(result.Checks))
	for i, c := range result.Checks {
		c.Label = translate(p, c.Label)
		out.Checks[i] = c
	}
	return out
}
