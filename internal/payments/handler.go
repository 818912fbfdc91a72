package payments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/httpx"
	"github.com/congo-pay/mini_wallet/internal/ledger"
)

// Handler exposes deposit, withdrawal and history endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// applyRequest accepts amount as a JSON number, a numeric string or a form field.
type applyRequest struct {
	ReferenceID string      `json:"reference_id" form:"reference_id"`
	Amount      json.Number `json:"amount" form:"amount"`
}

type transactionResponse struct {
	ID           string      `json:"id"`
	WalletID     string      `json:"wallet_id"`
	OwnedBy      string      `json:"owned_by"`
	Status       string      `json:"status"`
	TransactedAt time.Time   `json:"transacted_at"`
	Type         ledger.Kind `json:"type"`
	Amount       int64       `json:"amount"`
	ReferenceID  string      `json:"reference_id"`
}

func toResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		WalletID:     tx.WalletID,
		OwnedBy:      tx.OwnerID,
		Status:       tx.Status,
		TransactedAt: tx.AppliedAt,
		Type:         tx.Kind,
		Amount:       tx.Amount,
		ReferenceID:  tx.ReferenceID,
	}
}

// Deposit applies a deposit to the authenticated owner's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.apply(c, ledger.KindDeposit)
}

// Withdraw applies a withdrawal to the authenticated owner's wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.apply(c, ledger.KindWithdraw)
}

func (h *Handler) apply(c *fiber.Ctx, kind ledger.Kind) error {
	ownerID, err := httpx.RequireOwner(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	amount, err := ParseAmount(req.Amount.String())
	if err != nil {
		return err
	}

	tx, err := h.service.Apply(c.UserContext(), ApplyInput{
		OwnerID:     ownerID,
		ReferenceID: req.ReferenceID,
		Amount:      amount,
		Kind:        kind,
	})
	if err != nil {
		return err
	}

	return httpx.Success(c, http.StatusCreated, fiber.Map{string(tx.Kind): toResponse(tx)})
}

// Transactions lists the authenticated owner's transactions.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	ownerID, err := httpx.RequireOwner(c)
	if err != nil {
		return err
	}
	txs, err := h.service.History(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	return httpx.Success(c, http.StatusOK, fiber.Map{"transactions": out})
}
