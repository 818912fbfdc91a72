package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/httpx"
)

// Handler exposes the account initialization endpoint.
type Handler struct {
	svc *Service
}

// NewHandler constructs an auth handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type initRequest struct {
	CustomerXID string `json:"customer_xid" form:"customer_xid"`
}

// Init creates the caller's wallet and returns its credential.
func (h *Handler) Init(c *fiber.Ctx) error {
	var req initRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.CustomerXID) == "" {
		return fiber.NewError(http.StatusBadRequest, "customer_xid is required")
	}

	cred, err := h.svc.Initialize(c.UserContext(), req.CustomerXID)
	if err != nil {
		return err
	}
	return httpx.Success(c, http.StatusCreated, fiber.Map{"token": cred.Token})
}
