package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		url    string
		header string
		want   string
	}{
		{name: "default", url: "/", want: LocaleJA},
		{name: "query wins", url: "/?lang=en", header: "ja-JP", want: LocaleEN},
		{name: "accept language", url: "/", header: "fr-FR, en-US;q=0.8", want: LocaleEN},
		{name: "unknown falls back", url: "/", header: "de-DE", want: LocaleJA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.header != "" {
				c.Request.Header.Set("Accept-Language", tc.header)
			}
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("locale want %s got %s", tc.want, got)
			}
		})
	}
}

func TestTFallsBackToKey(t *testing.T) {
	if got := T(LocaleEN, "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("unknown key should be returned as-is, got %s", got)
	}
	if got := T("xx", "error.unauthorized"); got != "ログインが必要です" {
		t.Fatalf("unknown locale should use default table, got %s", got)
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEN, "error.rate_limited", 30); got != "Too many attempts, retry in 30 seconds" {
		t.Fatalf("unexpected message %s", got)
	}
}

func TestLocaleTablesHaveSameKeys(t *testing.T) {
	for key := range messages[LocaleJA] {
		if _, ok := messages[LocaleEN][key]; !ok {
			t.Fatalf("en table misses %s", key)
		}
	}
	for key := range messages[LocaleEN] {
		if _, ok := messages[LocaleJA][key]; !ok {
			t.Fatalf("ja table misses %s", key)
		}
	}
}
