package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/congo-pay/mini_wallet/internal/wallet"
)

var (
	// ErrInsufficientFunds occurs when a withdrawal exceeds the wallet balance.
	ErrInsufficientFunds = errors.New("insufficient balance in wallet")

	// ErrDuplicateReference indicates the reference id was already recorded by
	// some posting, on any wallet.
	ErrDuplicateReference = errors.New("transaction with the reference_id already exists")

	// ErrInvalidEntry is returned for entries that fail basic shape checks.
	ErrInvalidEntry = errors.New("invalid ledger entry")
)

// Kind is the direction of a posting.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"

	// StatusSuccess is recorded on every persisted transaction.
	StatusSuccess = "success"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdraw
}

// Delta returns the signed balance change for amount.
func (k Kind) Delta(amount int64) int64 {
	if k == KindWithdraw {
		return -amount
	}
	return amount
}

// Entry is a request to post a delta to the owner's wallet.
type Entry struct {
	OwnerID     string
	ReferenceID string
	Kind        Kind
	Amount      int64
}

func (e Entry) validate() error {
	switch {
	case e.OwnerID == "":
		return fmt.Errorf("%w: owner is required", ErrInvalidEntry)
	case strings.TrimSpace(e.ReferenceID) == "":
		return fmt.Errorf("%w: reference id is required", ErrInvalidEntry)
	case !e.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, e.Kind)
	case e.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	}
	return nil
}

// Transaction is an immutable, applied ledger record.
type Transaction struct {
	ID          string
	WalletID    string
	OwnerID     string
	ReferenceID string
	Kind        Kind
	Amount      int64
	Status      string
	AppliedAt   time.Time
}

// Posting is the outcome of a committed entry: the record and the wallet as
// it stands right after the delta.
type Posting struct {
	Transaction Transaction
	Wallet      wallet.Wallet
}

// Ledger is the append-only transaction log. Post is the only path that
// changes a wallet balance: it re-checks status, funds and reference
// uniqueness and appends plus applies the delta as one atomic unit.
type Ledger interface {
	Exists(ctx context.Context, referenceID string) (bool, error)
	Post(ctx context.Context, entry Entry) (Posting, error)
	History(ctx context.Context, walletID string) ([]Transaction, error)
}

// Fold sums the signed amounts of txs, which must equal the wallet balance.
func Fold(txs []Transaction) int64 {
	var total int64
	for _, tx := range txs {
		total += tx.Kind.Delta(tx.Amount)
	}
	return total
}

// checkPosting enforces the wallet-side preconditions shared by all backends.
func checkPosting(w wallet.Wallet, delta int64) error {
	if !w.Enabled() {
		return wallet.ErrWalletDisabled
	}
	if w.Balance+delta < 0 {
		return ErrInsufficientFunds
	}
	return nil
}
