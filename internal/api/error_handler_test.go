package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parceldesk/shipment-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"shipment not found", domain.ErrShipmentNotFound, http.StatusNotFound},
		{"access denied", domain.ErrAccessDenied, http.StatusForbidden},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"invalid state", domain.ErrInvalidState, http.StatusUnprocessableEntity},
		{"already scheduled", domain.ErrAlreadyScheduled, http.StatusConflict},
		{"booking failed", domain.ErrBookingFailed, http.StatusInternalServerError},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"inconsistent", domain.ErrInconsistent, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("find shipment abc: %w", domain.ErrShipmentNotFound)
	code, msg := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
	if msg != "shipment not found" {
		t.Fatalf("wrapped detail must not leak, got %q", msg)
	}
}

func TestHTTPErrorHandler_InconsistentWinsOverWrappedKind(t *testing.T) {
	// A compensation failure wraps both ErrInconsistent and the original
	// cause; the client must always see a 500, never the inner error's code.
	err := fmt.Errorf("%w: revert failed (original: %w)", domain.ErrInconsistent, domain.ErrInvalidTransition)
	code, _ := renderError(t, err)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "invalid payload" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	code, msg := renderError(t, errors.New("database exploded with credentials inside"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail must not leak, got %q", msg)
	}
}
