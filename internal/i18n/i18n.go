// Package i18n provides locale resolution and typed message lookup for the web pages.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "survey_lang"
)

var (
	supported = []language.Tag{language.English, language.Finnish}
	matcher   = language.NewMatcher(supported)
	messages  = mustBuildCatalog()
)

func mustBuildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, table := range map[language.Tag]map[Key]string{
		language.English: english,
		language.Finnish: finnish,
	} {
		for key, text := range table {
			if err := builder.SetString(tag, string(key), text); err != nil {
				panic(err)
			}
		}
	}
	return builder
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Localizer resolves typed keys to display strings for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for tag, falling back to English for unsupported tags.
func New(tag language.Tag) Localizer {
	tag = Match(tag)
	return Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// Text returns the translation for key, formatted with args.
func (l Localizer) Text(key Key, args ...any) string {
	if l.printer == nil {
		l = New(Default())
	}
	return l.printer.Sprintf(string(key), args...)
}

// Tag is the language this Localizer renders.
func (l Localizer) Tag() language.Tag {
	if l.printer == nil {
		return Default()
	}
	return l.tag
}

// Lang returns the BCP 47 form used in the html lang attribute.
func (l Localizer) Lang() string {
	return l.Tag().String()
}

// Match coerces tag to the closest supported language.
func Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return Default()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supported[index]
}

// ParseTag parses value and reports whether it names a supported language.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// ResolveTag determines the best language tag for the request.
// The bool indicates whether the lang query param should be persisted as a cookie.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return Match(tags...), false
		}
	}

	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
