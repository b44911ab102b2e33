package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskline/task-api/internal/core/domain"
)

func resolveForTest(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return resolveError(err, zerolog.Nop(), c)
}

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrUsernameTaken, http.StatusBadRequest},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrTaskNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		code, _ := resolveForTest(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		// Wrapped errors map the same way.
		code, _ = resolveForTest(t, fmt.Errorf("context: %w", tc.err))
		if code != tc.code {
			t.Errorf("wrapped %v: expected %d, got %d", tc.err, tc.code, code)
		}
	}
}

func TestResolveError_UnexpectedErrorIsGeneric(t *testing.T) {
	code, msg := resolveForTest(t, errors.New("pq: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal detail must not leak into the client-facing message.
	if msg != "internal server error" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	code, msg := resolveForTest(t, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized"))
	if code != http.StatusUnauthorized || msg != "unauthorized" {
		t.Fatalf("expected 401/unauthorized, got %d/%q", code, msg)
	}
}
