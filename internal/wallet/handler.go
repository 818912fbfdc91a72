package wallet

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/httpx"
)

// Handler exposes wallet HTTP endpoints for the authenticated owner.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Response is the wire form of a wallet snapshot.
type Response struct {
	ID         string     `json:"id"`
	OwnedBy    string     `json:"owned_by"`
	Status     Status     `json:"status"`
	EnabledAt  *time.Time `json:"enabled_at,omitempty"`
	DisabledAt *time.Time `json:"disabled_at,omitempty"`
	Balance    int64      `json:"balance"`
}

// ToResponse converts a wallet to its wire form.
func ToResponse(w Wallet) Response {
	return Response{
		ID:         w.ID,
		OwnedBy:    w.OwnerID,
		Status:     w.Status,
		EnabledAt:  w.EnabledAt,
		DisabledAt: w.DisabledAt,
		Balance:    w.Balance,
	}
}

// View returns the owner's wallet snapshot.
func (h *Handler) View(c *fiber.Ctx) error {
	ownerID, err := httpx.RequireOwner(c)
	if err != nil {
		return err
	}
	w, err := h.service.View(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return httpx.Success(c, http.StatusOK, fiber.Map{"wallet": ToResponse(w)})
}

// Enable turns the owner's wallet on.
func (h *Handler) Enable(c *fiber.Ctx) error {
	return h.setStatus(c, StatusEnabled)
}

// Disable turns the owner's wallet off.
func (h *Handler) Disable(c *fiber.Ctx) error {
	return h.setStatus(c, StatusDisabled)
}

func (h *Handler) setStatus(c *fiber.Ctx, status Status) error {
	ownerID, err := httpx.RequireOwner(c)
	if err != nil {
		return err
	}
	w, err := h.service.SetStatus(c.UserContext(), ownerID, status)
	if err != nil {
		return err
	}
	return httpx.Success(c, http.StatusOK, fiber.Map{"wallet": ToResponse(w)})
}
