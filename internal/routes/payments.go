package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/payments"
)

// RegisterPaymentRoutes wires deposit, withdrawal and history endpoints.
// idempotency may be nil when no cache is configured.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler, idempotency fiber.Handler) {
	if idempotency != nil {
		r.Post("/wallet/deposits", idempotency, h.Deposit)
		r.Post("/wallet/withdrawals", idempotency, h.Withdraw)
	} else {
		r.Post("/wallet/deposits", h.Deposit)
		r.Post("/wallet/withdrawals", h.Withdraw)
	}
	r.Get("/wallet/transactions", h.Transactions)
}
