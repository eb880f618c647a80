package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTranslateFallsBackToDefaultLocaleAndKey(t *testing.T) {
	if got := T("fr", "error.order_not_found"); got != messages[DefaultLocale]["error.order_not_found"] {
		t.Fatalf("unsupported locale should use the default table, got %q", got)
	}
	if got := T(LocaleEN, "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("unknown key should be returned as is, got %q", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must be at least 8 characters" {
		t.Fatalf("unexpected formatted message %q", got)
	}
}

func TestLocaleTablesHaveSameKeys(t *testing.T) {
	for key := range messages[LocaleAR] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Errorf("key %s missing in en", key)
		}
	}
	for key := range messages[LocaleEN] {
		if _, ok := messages[LocaleAR][key]; !ok {
			t.Errorf("key %s missing in ar", key)
		}
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "default", want: LocaleAR},
		{name: "x-locale", header: map[string]string{"X-Locale": "en"}, want: LocaleEN},
		{name: "accept-language", header: map[string]string{"Accept-Language": "fr-FR, en-US;q=0.8"}, want: LocaleEN},
		{name: "x-locale wins", header: map[string]string{"X-Locale": "ar", "Accept-Language": "en"}, want: LocaleAR},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("locale want %s got %s", tc.want, got)
			}
		})
	}
}
