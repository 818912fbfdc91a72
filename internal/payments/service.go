package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/congo-pay/mini_wallet/internal/ledger"
	"github.com/congo-pay/mini_wallet/internal/notification"
	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// ErrValidation marks malformed or missing amount/reference input.
var ErrValidation = errors.New("validation error")

// Service is the transaction processor: the only caller of ledger.Post.
type Service struct {
	wallets  *wallet.Service
	ledger   ledger.Ledger
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewService constructs the processor over its collaborators. notifier may be nil.
func NewService(wallets *wallet.Service, ledger ledger.Ledger, notifier notification.Notifier, logger *slog.Logger) *Service {
	return &Service{wallets: wallets, ledger: ledger, notifier: notifier, logger: logger}
}

// ApplyInput captures a deposit or withdrawal request for an owner's wallet.
type ApplyInput struct {
	OwnerID     string
	ReferenceID string
	Amount      int64
	Kind        ledger.Kind
}

// Apply validates the request, rejects it early when the wallet is missing,
// disabled, short of funds or the reference is taken, and otherwise posts it.
// The ledger repeats the wallet and reference checks atomically, so a request
// that loses a race still fails with the precise error.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (ledger.Transaction, error) {
	in.ReferenceID = strings.TrimSpace(in.ReferenceID)
	if err := validate(in); err != nil {
		return ledger.Transaction{}, err
	}

	w, err := s.wallets.Get(ctx, in.OwnerID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if !w.Enabled() {
		return ledger.Transaction{}, wallet.ErrWalletDisabled
	}
	if in.Kind == ledger.KindWithdraw && w.Balance < in.Amount {
		return ledger.Transaction{}, ledger.ErrInsufficientFunds
	}

	exists, err := s.ledger.Exists(ctx, in.ReferenceID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	if exists {
		return ledger.Transaction{}, ledger.ErrDuplicateReference
	}

	posting, err := s.ledger.Post(ctx, ledger.Entry{
		OwnerID:     in.OwnerID,
		ReferenceID: in.ReferenceID,
		Kind:        in.Kind,
		Amount:      in.Amount,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidEntry) {
			return ledger.Transaction{}, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return ledger.Transaction{}, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "transaction applied",
			slog.String("transaction_id", posting.Transaction.ID),
			slog.String("wallet_id", posting.Wallet.ID),
			slog.String("reference_id", in.ReferenceID),
			slog.String("kind", string(in.Kind)),
			slog.Int64("amount", in.Amount),
			slog.Int64("balance", posting.Wallet.Balance),
		)
	}
	s.notify(ctx, posting)

	return posting.Transaction, nil
}

// Deposit adds amount to the owner's wallet.
func (s *Service) Deposit(ctx context.Context, ownerID, referenceID string, amount int64) (ledger.Transaction, error) {
	return s.Apply(ctx, ApplyInput{OwnerID: ownerID, ReferenceID: referenceID, Amount: amount, Kind: ledger.KindDeposit})
}

// Withdraw removes amount from the owner's wallet.
func (s *Service) Withdraw(ctx context.Context, ownerID, referenceID string, amount int64) (ledger.Transaction, error) {
	return s.Apply(ctx, ApplyInput{OwnerID: ownerID, ReferenceID: referenceID, Amount: amount, Kind: ledger.KindWithdraw})
}

// History lists the transactions of the owner's enabled wallet.
func (s *Service) History(ctx context.Context, ownerID string) ([]ledger.Transaction, error) {
	w, err := s.wallets.View(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, w.ID)
}

// ParseAmount converts a raw request amount into a positive integer.
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrValidation)
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: amount must be an integer", ErrValidation)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return amount, nil
}

func validate(in ApplyInput) error {
	switch {
	case in.ReferenceID == "":
		return fmt.Errorf("%w: reference_id is required", ErrValidation)
	case in.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	case !in.Kind.Valid():
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, in.Kind)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, posting ledger.Posting) {
	if s.notifier == nil {
		return
	}
	kind := notification.KindDeposit
	if posting.Transaction.Kind == ledger.KindWithdraw {
		kind = notification.KindWithdrawal
	}
	if err := s.notifier.Send(ctx, notification.Message{
		Kind:        kind,
		Destination: posting.Wallet.OwnerID,
		Body:        fmt.Sprintf("%s of %d applied, balance %d", posting.Transaction.Kind, posting.Transaction.Amount, posting.Wallet.Balance),
		Attributes:  map[string]string{"reference_id": posting.Transaction.ReferenceID},
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "notification failed", slog.Any("error", err))
	}
}
