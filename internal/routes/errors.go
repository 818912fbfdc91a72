package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/auth"
	"github.com/congo-pay/mini_wallet/internal/httpx"
	"github.com/congo-pay/mini_wallet/internal/identity"
	"github.com/congo-pay/mini_wallet/internal/ledger"
	"github.com/congo-pay/mini_wallet/internal/payments"
	"github.com/congo-pay/mini_wallet/internal/wallet"
)

const internalErrorMessage = "internal server error"

var statusByError = []struct {
	err    error
	status int
}{
	{payments.ErrValidation, http.StatusBadRequest},
	{wallet.ErrInvalidStatus, http.StatusBadRequest},
	{auth.ErrInvalidCredential, http.StatusUnauthorized},
	{wallet.ErrWalletDisabled, http.StatusForbidden},
	{identity.ErrUnknownCustomer, http.StatusNotFound},
	{wallet.ErrWalletNotFound, http.StatusNotFound},
	{wallet.ErrDuplicateWallet, http.StatusConflict},
	{ledger.ErrDuplicateReference, http.StatusConflict},
	{ledger.ErrInsufficientFunds, http.StatusUnprocessableEntity},
}

// ErrorHandler renders every error returned by a handler as a fail envelope.
// Unrecognised errors are logged and reported without detail.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return httpx.Fail(c, fe.Code, fe.Message)
		}

		for _, m := range statusByError {
			if errors.Is(err, m.err) {
				return httpx.Fail(c, m.status, message(err, m.err))
			}
		}

		logger.ErrorContext(c.UserContext(), "unhandled request error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return httpx.Fail(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

// message drops the sentinel prefix of wrapped validation errors so the
// client sees only the detail.
func message(err, sentinel error) string {
	if sentinel == payments.ErrValidation {
		if detail := strings.TrimPrefix(err.Error(), sentinel.Error()+": "); detail != "" {
			return detail
		}
	}
	return sentinel.Error()
}
