package wallet

import (
	"errors"
	"time"
)

// Status is the lifecycle state gating whether transactions may be applied.
type Status string

const (
	StatusEnabled  Status = "enabled"
	StatusDisabled Status = "disabled"

	// InitialStatus is assigned to every newly created wallet.
	InitialStatus = StatusDisabled
)

var (
	ErrWalletNotFound  = errors.New("wallet for the user not initiated")
	ErrDuplicateWallet = errors.New("wallet already initialized for this user")
	ErrWalletDisabled  = errors.New("wallet is disabled")
	ErrInvalidStatus   = errors.New("invalid wallet status")
)

// Wallet is the balance and status record held by exactly one owner.
type Wallet struct {
	ID         string
	OwnerID    string
	Balance    int64
	Status     Status
	EnabledAt  *time.Time
	DisabledAt *time.Time
	CreatedAt  time.Time
}

// Enabled reports whether transactions may be applied.
func (w Wallet) Enabled() bool {
	return w.Status == StatusEnabled
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusEnabled || s == StatusDisabled
}

// transition applies a status change, stamping the matching timestamp only
// when the status actually changes.
func (w *Wallet) transition(status Status, at time.Time) {
	if w.Status == status {
		return
	}
	w.Status = status
	t := at.UTC()
	if status == StatusEnabled {
		w.EnabledAt = &t
	} else {
		w.DisabledAt = &t
	}
}
