package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "No token provided"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Access denied"},
		{"not found", ErrTicketNotFound, http.StatusNotFound, "Ticket not found"},
		{"conflict", ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
		{"wrapped domain error", fmt.Errorf("update: %w", ErrAdminRequired), http.StatusForbidden, "Admin access required"},
		{"internal hides detail", &Error{Kind: KindInternal, Message: "db password is hunter2"}, http.StatusInternalServerError, "Internal Server Error"},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "Record not found"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"echo with message", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "Method Not Allowed: nope"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestMapErrorToHTTP_ValidationDetails(t *testing.T) {
	type req struct {
		Email string `validate:"required,email"`
		Name  string `validate:"min=2"`
	}
	err := validator.New().Struct(req{Email: "x", Name: "a"})
	require.Error(t, err)

	got := MapErrorToHTTP(err)

	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, "Validation failed", got.Message)
	assert.Equal(t, []FieldError{
		{Field: "Email", Message: "must be a valid email address"},
		{Field: "Name", Message: "must be at least 2 characters"},
	}, got.Details)
}

func TestHTTPError_ToErrorResponse(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC)

	resp := NewHTTPError(http.StatusNotFound, "Ticket not found").ToErrorResponse(at)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"Ticket not found","statusCode":404,"timestamp":"2024-05-06T07:08:09.123Z"}}`, string(data))
}

func TestNewHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	boom := func(c echo.Context) error { return ErrCategoryNotFound }
	e.GET("/boom", boom)
	e.HEAD("/boom", boom)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		req := httptest.NewRequest(method, "/boom", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		if method == http.MethodHead {
			assert.Empty(t, rec.Body.String())
			continue
		}
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Category not found", body.Error.Message)
		assert.Equal(t, http.StatusNotFound, body.Error.StatusCode)
	}
}
