package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tawseel-next/internal/http/response"
	"github.com/tawseel-next/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestContext(locale string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if locale != "" {
		c.Request.Header.Set("X-Locale", locale)
	}
	return c, w
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return body.Msg
}

func TestRespondMappedMatchesWrappedSentinel(t *testing.T) {
	c, w := newTestContext("en")
	rules := []MappedError{
		{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	}
	RespondMapped(c, fmt.Errorf("load: %w", service.ErrOrderNotFound), rules, response.CodeInternal, "error.internal")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if msg := decodeMsg(t, w); msg != "Order not found" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRespondMappedFieldError(t *testing.T) {
	c, w := newTestContext("en")
	fieldErr := &service.FieldError{Field: "recipient_name"}
	RespondMapped(c, fieldErr, nil, response.CodeInternal, "error.internal")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := decodeMsg(t, w); msg != "recipient_name is required" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestRespondMappedFallbackHidesCause(t *testing.T) {
	c, w := newTestContext("")
	RespondMapped(c, errors.New("db exploded"), nil, response.CodeInternal, "error.internal")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if msg := decodeMsg(t, w); msg == "" || msg == "db exploded" {
		t.Fatalf("cause must not leak: %q", msg)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, w := newTestContext("")
	if _, ok := CurrentUserID(c); ok {
		t.Fatalf("expected missing user")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	c2, _ := newTestContext("")
	c2.Set(ContextUserID, uint(9))
	if id, ok := CurrentUserID(c2); !ok || id != 9 {
		t.Fatalf("expected user 9, got %d %v", id, ok)
	}
}

func TestNormalizePagination(t *testing.T) {
	page, size := NormalizePagination(0, 500)
	if page != 1 || size != 100 {
		t.Fatalf("unexpected pagination: %d %d", page, size)
	}
	if ParseOptionalUint("abc") != nil || *ParseOptionalUint("7") != 7 {
		t.Fatalf("unexpected optional uint parsing")
	}
}
