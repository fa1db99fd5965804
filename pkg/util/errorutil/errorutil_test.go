package errorutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain error passes through wrapping", func(t *testing.T) {
		base := NewUnauthorized("nope")
		wrapped := errors.Join(errors.New("ctx"), base)

		got := ToDomainError(wrapped)
		assert.Equal(t, http.StatusUnauthorized, got.HTTPStatus)
		assert.Equal(t, "UNAUTHORIZED", got.Code)
	})

	t.Run("fiber error keeps status", func(t *testing.T) {
		got := ToDomainError(fiber.NewError(http.StatusNotFound, "Cannot GET /nope"))
		assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
		assert.Equal(t, "NOT_FOUND", got.Code)
		assert.Equal(t, "Cannot GET /nope", got.Message)
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		cause := errors.New("connection reset by peer")
		got := ToDomainError(cause)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.ErrorIs(t, got, cause)
		assert.Equal(t, "internal server error", got.Message)
	})
}

func TestWrapKeepsIdentity(t *testing.T) {
	sentinel := errors.New("role mismatch")
	base := NewDomainError("ROLE_MISMATCH", "Access denied.", http.StatusForbidden, nil)

	got := base.Wrap(sentinel)
	assert.ErrorIs(t, got, sentinel)
	assert.Nil(t, base.Err)
	assert.Equal(t, base.Code, got.Code)
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return Respond(c, NewInternalError(errors.New("dial tcp 10.0.0.3:5432: refused")))
	})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return Respond(c, NewValidationError("invalid payload", map[string]any{"email": "must be a valid email address"}))
	})

	t.Run("internal error hides cause", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/internal", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "10.0.0.3")

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "internal server error", body["message"])
	})

	t.Run("validation details under errors", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/validation", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "VALIDATION_FAILED", body["code"])
		assert.Contains(t, body["errors"], "email")
	})
}
