package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service exposes the wallet lifecycle: create, read and status transitions.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a wallet service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create provisions an empty wallet for the owner in InitialStatus.
func (s *Service) Create(ctx context.Context, ownerID string) (Wallet, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return Wallet{}, fmt.Errorf("invalid owner id: %w", err)
	}

	wallet := Wallet{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Balance:   0,
		Status:    InitialStatus,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, wallet); err != nil {
		return Wallet{}, err
	}

	return wallet, nil
}

// Get retrieves the owner's wallet regardless of status.
func (s *Service) Get(ctx context.Context, ownerID string) (Wallet, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// View returns the wallet snapshot shown to its owner; a disabled wallet is
// not viewable.
func (s *Service) View(ctx context.Context, ownerID string) (Wallet, error) {
	wallet, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return Wallet{}, err
	}
	if !wallet.Enabled() {
		return Wallet{}, ErrWalletDisabled
	}
	return wallet, nil
}

// SetStatus transitions the wallet. Setting the status it already holds succeeds
// without changing anything.
func (s *Service) SetStatus(ctx context.Context, ownerID string, status Status) (Wallet, error) {
	if !status.Valid() {
		return Wallet{}, ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, ownerID, status, s.now())
}

// Enable allows transactions on the owner's wallet.
func (s *Service) Enable(ctx context.Context, ownerID string) (Wallet, error) {
	return s.SetStatus(ctx, ownerID, StatusEnabled)
}

// Disable blocks transactions on the owner's wallet.
func (s *Service) Disable(ctx context.Context, ownerID string) (Wallet, error) {
	return s.SetStatus(ctx, ownerID, StatusDisabled)
}
