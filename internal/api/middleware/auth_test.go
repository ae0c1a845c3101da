package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkpress/blog-system/internal/token"
)

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := token.New("secret", time.Hour)

	signed, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		if id, _ := c.Get(SubjectKey).(int64); id != 42 {
			t.Fatalf("subject id not set, got %v", c.Get(SubjectKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func rejects(t *testing.T, authorization string) *echo.HTTPError {
	t.Helper()
	e := echo.New()
	tokens := token.New("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
	return he
}

func TestAuth_MissingHeader(t *testing.T) {
	he := rejects(t, "")
	if he.Message != "missing credential" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_WrongScheme(t *testing.T) {
	he := rejects(t, "Token abc")
	if he.Message != "missing credential" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	he := rejects(t, "Bearer not-a-token")
	if he.Message != "invalid or expired credential" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	issuer := token.New("secret", 24*time.Hour).WithClock(func() time.Time { return issuedAt })
	signed, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	he := rejects(t, "Bearer "+signed)
	if he.Message != "invalid or expired credential" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
