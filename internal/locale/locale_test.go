package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errorKinds = []string{
	"missing_file",
	"file_too_large",
	"invalid_file_type",
	"invalid_json",
	"not_an_array",
	"no_highlights_found",
	"no_valid_highlights",
	"too_many_highlights",
	"storage_error",
	"delete_failed",
}

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := NewTranslator("pt-BR")
	require.NoError(t, err)
	return tr
}

func TestNewTranslator_RejectsUnsupportedDefault(t *testing.T) {
	_, err := NewTranslator("fr")
	assert.Error(t, err)

	_, err = NewTranslator("not a tag!")
	assert.Error(t, err)
}

func TestMessage_DefaultCatalog(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Nenhum arquivo enviado", tr.Message(nil, "missing_file", nil))
	assert.Equal(t, "Arquivo muito grande. O limite é 5MB.",
		tr.Message(nil, "file_too_large", map[string]any{"MaxMB": 5}))
	assert.Equal(t, "Tipo de arquivo inválido. Envie um arquivo .txt",
		tr.Message(nil, "invalid_file_type", map[string]any{"Extension": ".txt"}))
	assert.Equal(t, "Arquivo contém muitos highlights. O limite por importação é 10000.",
		tr.Message(nil, "too_many_highlights", map[string]any{"Limit": 10000}))
}

func TestMessage_EveryKindIsDistinct(t *testing.T) {
	tr := newTranslator(t)

	for _, lang := range Supported {
		seen := map[string]string{}
		localizer := tr.Localizer(lang)
		for _, kind := range errorKinds {
			msg := tr.Message(localizer, kind, map[string]any{"MaxMB": 5, "Extension": ".json", "Limit": 3})
			require.NotEmpty(t, msg, "%s/%s", lang, kind)
			if other, dup := seen[msg]; dup {
				t.Errorf("%s: %s and %s share message %q", lang, kind, other, msg)
			}
			seen[msg] = kind
		}
	}
}

func TestMessage_UnknownIDFallsBack(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Error saving to the database. Please try again.",
		tr.Message(tr.Localizer("en"), "no_such_message", nil))
}

func TestMatch(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"nothing", nil, "pt-BR"},
		{"plain tag", []string{"es"}, "es"},
		{"portuguese base", []string{"pt"}, "pt-BR"},
		{"accept-language", []string{"", "", "en-US,en;q=0.9"}, "en"},
		{"first preference wins", []string{"es", "en"}, "es"},
		{"unsupported falls through", []string{"fr", "en"}, "en"},
		{"unsupported everywhere", []string{"fr", "de-DE"}, "pt-BR"},
		{"garbage", []string{"!!!"}, "pt-BR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := newTranslator(t)

	router := gin.New()
	router.Use(Middleware(tr))
	router.GET("/msg", func(c *gin.Context) {
		c.String(http.StatusOK, LocaleFromContext(c)+"|"+tr.Message(FromContext(c), "invalid_json", nil))
	})

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   string
	}{
		{"default", "/msg", "", "", "pt-BR|JSON inválido"},
		{"accept-language", "/msg", "", "en-GB,en;q=0.8", "en|Invalid JSON"},
		{"cookie beats header", "/msg", "es", "en", "es|JSON inválido"},
		{"query beats cookie", "/msg?lang=en", "es", "", "en|Invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
