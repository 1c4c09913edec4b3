// Package locale renders user-facing messages in the reader's language.
//
// Catalogs for pt-BR, en and es are embedded. Every services.ErrorKind has
// a message with the same id, plus "import_success" and "delete_success".
package locale

import (
	"embed"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var json = jsoniter.ConfigFastest

//go:embed messages/*.json
var catalogs embed.FS

// Message ids that are not error kinds.
const (
	MessageImportSuccess = "import_success"
	MessageDeleteSuccess = "delete_success"

	// fallbackMessage is rendered for ids missing from every catalog.
	fallbackMessage = "storage_error"
)

// Supported lists the shipped locales in catalog order.
var Supported = []string{"pt-BR", "en", "es"}

// Translator owns the message bundle and the language matcher.
type Translator struct {
	bundle        *i18n.Bundle
	matcher       language.Matcher
	tags          []language.Tag
	defaultLocale string
}

// NewTranslator loads the embedded catalogs. defaultLocale is used when
// negotiation finds no match; it must be one of Supported.
func NewTranslator(defaultLocale string) (*Translator, error) {
	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", defaultLocale, err)
	}

	t := &Translator{
		bundle:        i18n.NewBundle(defaultTag),
		defaultLocale: defaultTag.String(),
	}
	t.bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	// The default goes first so the matcher falls back to it.
	t.tags = append(t.tags, defaultTag)
	found := false
	for _, lang := range Supported {
		if _, err := t.bundle.LoadMessageFileFS(catalogs, "messages/"+lang+".json"); err != nil {
			return nil, fmt.Errorf("failed to load language bundle for %s: %w", lang, err)
		}
		tag := language.MustParse(lang)
		if tag == defaultTag {
			found = true
			continue
		}
		t.tags = append(t.tags, tag)
	}
	if !found {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	t.matcher = language.NewMatcher(t.tags)
	return t, nil
}

// Match picks the best supported locale for the given preferences, which
// may be plain tags or Accept-Language header values. Earlier arguments
// take precedence; empty ones are ignored.
func (t *Translator) Match(preferences ...string) string {
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, index, confidence := t.matcher.Match(tags...)
		if confidence == language.No {
			continue
		}
		return t.tags[index].String()
	}
	return t.defaultLocale
}

// Localizer returns a localizer for one of the supported locales.
func (t *Translator) Localizer(locale string) *i18n.Localizer {
	return i18n.NewLocalizer(t.bundle, locale, t.defaultLocale)
}

// Message renders messageID with params. A nil localizer uses the default
// locale; an unknown id renders the generic storage error text.
func (t *Translator) Message(localizer *i18n.Localizer, messageID string, params map[string]any) string {
	if localizer == nil {
		localizer = t.Localizer(t.defaultLocale)
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: params,
	})
	if err == nil {
		return msg
	}

	msg, err = localizer.Localize(&i18n.LocalizeConfig{MessageID: fallbackMessage})
	if err != nil {
		return fallbackMessage
	}
	return msg
}
