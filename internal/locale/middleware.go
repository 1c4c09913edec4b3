package locale

import (
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
)

const (
	// QueryParam and CookieName let a client pin the response language.
	QueryParam = "lang"
	CookieName = "locale"

	ctxLocalizerKey = "locale.localizer"
	ctxLocaleKey    = "locale.tag"
)

// Middleware negotiates the response language: the lang query parameter,
// then the locale cookie, then Accept-Language, then the default.
func Middleware(t *Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(CookieName)
		lang := t.Match(c.Query(QueryParam), cookie, c.GetHeader("Accept-Language"))

		c.Set(ctxLocaleKey, lang)
		c.Set(ctxLocalizerKey, t.Localizer(lang))
		c.Next()
	}
}

// FromContext returns the localizer stored by Middleware, or nil.
func FromContext(c *gin.Context) *i18n.Localizer {
	v, ok := c.Get(ctxLocalizerKey)
	if !ok {
		return nil
	}
	localizer, _ := v.(*i18n.Localizer)
	return localizer
}

// LocaleFromContext returns the negotiated locale tag, or "".
func LocaleFromContext(c *gin.Context) string {
	return c.GetString(ctxLocaleKey)
}
