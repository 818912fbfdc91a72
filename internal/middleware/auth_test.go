package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/congo-pay/mini_wallet/internal/auth"
	"github.com/congo-pay/mini_wallet/internal/httpx"
	"github.com/congo-pay/mini_wallet/internal/identity"
)

type stubAuthenticator map[string]string

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (identity.Owner, error) {
	id, ok := s[token]
	if !ok {
		return identity.Owner{}, auth.ErrInvalidCredential
	}
	return identity.Owner{ID: id}, nil
}

func TestRequireCredential(t *testing.T) {
	app := fiber.New()
	app.Get("/me", RequireCredential(stubAuthenticator{"good": "owner-1"}), func(c *fiber.Ctx) error {
		return c.SendString(httpx.OwnerID(c))
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"token scheme", "Token good", fiber.StatusOK},
		{"bearer scheme", "Bearer good", fiber.StatusOK},
		{"lowercase scheme", "token good", fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"unknown scheme", "Basic good", fiber.StatusUnauthorized},
		{"no credential", "Token ", fiber.StatusUnauthorized},
		{"bad credential", "Token bad", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestCredentialFromHeader(t *testing.T) {
	token, ok := credentialFromHeader("  Token   abc.def ")
	require.True(t, ok)
	assert.Equal(t, "abc.def", token)

	_, ok = credentialFromHeader("abc.def")
	assert.False(t, ok)
}
