package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/softphone-backend/pkg/util"
)

func TestConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"bad request", util.NewBadRequest("bad"), "BAD_REQUEST", http.StatusBadRequest},
		{"unauthorized", util.NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", util.NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{"internal", util.NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *util.DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := util.NewInternalError(cause)

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "Internal server error", domainErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestToDomainError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, util.ToDomainError(nil))
	})

	t.Run("passthrough", func(t *testing.T) {
		orig := util.NewUnauthorized("Unauthorized")
		assert.Same(t, orig, error(util.ToDomainError(orig)))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		orig := util.NewForbidden("Forbidden")
		wrapped := fmt.Errorf("handler: %w", orig)
		assert.Equal(t, http.StatusForbidden, util.ToDomainError(wrapped).HTTPStatus)
	})

	t.Run("fiber error", func(t *testing.T) {
		converted := util.ToDomainError(fiber.ErrMethodNotAllowed)
		assert.Equal(t, http.StatusMethodNotAllowed, converted.HTTPStatus)
		assert.Equal(t, fiber.ErrMethodNotAllowed.Message, converted.Message)
	})

	t.Run("unknown error", func(t *testing.T) {
		converted := util.ToDomainError(errors.New("raw"))
		assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
		assert.Equal(t, "Internal server error", converted.Message)
	})
}
