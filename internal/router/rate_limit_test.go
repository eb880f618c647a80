package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func loginContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.7:40000"
	return c
}

func TestLoginKeyCombinesEmailAndIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := loginContext(`{"email":"  Entry@Tawseel.Local ","password":"x"}`)

	if key := KeyByIPAndJSONField("email")(c); key != "entry@tawseel.local|10.0.0.7" {
		t.Fatalf("unexpected key %q", key)
	}
	body, _ := io.ReadAll(c.Request.Body)
	if !strings.Contains(string(body), "Entry@Tawseel.Local") {
		t.Fatalf("login handler must still see the original body, got %s", body)
	}
}

func TestLoginKeyFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, body := range []string{``, `not json`, `{"email":42}`, `{"password":"x"}`} {
		if key := KeyByIPAndJSONField("email")(loginContext(body)); key != "10.0.0.7" {
			t.Fatalf("body %q: want ip key, got %q", body, key)
		}
	}
}

func TestRateLimitOffWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("attempt %d: want 204 got %d", i, w.Code)
		}
	}
}

func TestRateLimitRejectsWhenRedisUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	r := gin.New()
	r.POST("/login", RateLimitMiddleware(client, RateLimitRule{Prefix: "rate:login", WindowSeconds: 60, MaxRequests: 5}, KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("X-Locale", "en")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 when the counter cannot be read, got %d", w.Code)
	}
}

func TestToInt64(t *testing.T) {
	if v, ok := toInt64(int64(4)); !ok || v != 4 {
		t.Fatalf("int64 not converted")
	}
	if v, ok := toInt64(7); !ok || v != 7 {
		t.Fatalf("int not converted")
	}
	if _, ok := toInt64("4"); ok {
		t.Fatalf("string should be rejected")
	}
}
