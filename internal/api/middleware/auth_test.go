package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestAuth_ValidTokenInjectsClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "u_42",
		"role":    "partner",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUser, gotRole string
	handler := Auth(testSecret)(func(c echo.Context) error {
		gotUser, _ = c.Get("user_id").(string)
		gotRole, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotUser != "u_42" {
		t.Errorf("user_id: want u_42, got %q", gotUser)
	}
	if gotRole != "partner" {
		t.Errorf("role: want partner, got %q", gotRole)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(c echo.Context) error { return nil })(c)
	assertUnauthorized(t, err)
}

func TestAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token := signedToken(t, "other-secret", jwt.MapClaims{
		"user_id": "u_42",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(c echo.Context) error { return nil })(c)
	assertUnauthorized(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"user_id": "u_42",
		"role":    "admin",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(c echo.Context) error { return nil })(c)
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(c echo.Context) error { return nil })(c)
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}
