package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/auth"
	"github.com/congo-pay/mini_wallet/internal/httpx"
	"github.com/congo-pay/mini_wallet/internal/identity"
)

// Authenticator resolves a credential to its owner.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Owner, error)
}

// RequireCredential validates the "Token <credential>" (or "Bearer") header
// and binds the resolved owner to the request.
func RequireCredential(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := credentialFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "authentication credentials were not provided")
		}

		owner, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredential) {
				return fiber.NewError(http.StatusUnauthorized, "invalid token")
			}
			return err
		}

		httpx.SetOwnerID(c, owner.ID)
		return c.Next()
	}
}

func credentialFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
