package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// RegisterWalletRoutes wires wallet lifecycle endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet", h.View)
	r.Post("/wallet", h.Enable)
	r.Patch("/wallet", h.Disable)
}
