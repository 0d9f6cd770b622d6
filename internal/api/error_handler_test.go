package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	err := domain.NewValidationError(
		domain.FieldError{Param: "gstin", Message: "Invalid GSTIN format. Expected format: 22AAAAA0000A1Z5"},
		domain.FieldError{Param: "email", Message: "Please provide a valid email address."},
	)

	rec, body := render(t, err)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) != 2 {
		t.Fatalf("expected errors array with 2 entries: %v", body)
	}
	first := errs[0].(map[string]any)
	if first["param"] != "gstin" || first["msg"] == "" {
		t.Fatalf("unexpected error entry: %v", first)
	}
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
		{domain.ErrEmailTaken, http.StatusConflict, "An account with this email already exists."},
		{domain.ErrGSTINTaken, http.StatusConflict, "A customer with this GSTIN already exists under your account."},
		{domain.ErrForbidden, http.StatusForbidden, "Access denied. Insufficient privileges."},
	}

	for _, tc := range cases {
		rec, body := render(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["error"] != tc.message {
			t.Fatalf("%v: unexpected message %v", tc.err, body["error"])
		}
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := render(t, echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided."))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["error"] != "Access denied. No token provided." {
		t.Fatalf("unexpected message: %v", body["error"])
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	rec, body := render(t, errors.New("pq: connection reset"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// Internal detail must never leak to the client.
	if body["error"] != "Internal server error." {
		t.Fatalf("unexpected message: %v", body["error"])
	}
}
