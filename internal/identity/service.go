package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service manages the customer directory.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register maps a new customer identifier to a freshly minted owner.
func (s *Service) Register(ctx context.Context, customerXID string) (Owner, error) {
	customerXID = strings.TrimSpace(customerXID)
	if customerXID == "" {
		return Owner{}, errors.New("customer_xid is required")
	}

	owner := Owner{
		ID:          uuid.New().String(),
		CustomerXID: customerXID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, owner); err != nil {
		return Owner{}, err
	}
	return owner, nil
}

// Resolve looks up the owner behind a customer identifier.
func (s *Service) Resolve(ctx context.Context, customerXID string) (Owner, error) {
	customerXID = strings.TrimSpace(customerXID)
	if customerXID == "" {
		return Owner{}, ErrUnknownCustomer
	}
	return s.repo.FindByCustomerXID(ctx, customerXID)
}

// Get fetches an owner by internal identifier.
func (s *Service) Get(ctx context.Context, id string) (Owner, error) {
	return s.repo.FindByID(ctx, id)
}
