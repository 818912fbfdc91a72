package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/auth"
)

// RegisterInitRoute wires account initialization.
func RegisterInitRoute(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/init", rateLimiter, h.Init)
		return
	}
	r.Post("/init", h.Init)
}
