package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/congo-pay/mini_wallet/internal/identity"
	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// Service initializes accounts and authenticates their credentials.
type Service struct {
	ids     *identity.Service
	wallets *wallet.Service
	tokens  *Tokens
	logger  *slog.Logger
}

// NewService wires the account directory to the wallet store and token codec.
func NewService(ids *identity.Service, wallets *wallet.Service, tokens *Tokens, logger *slog.Logger) *Service {
	return &Service{ids: ids, wallets: wallets, tokens: tokens, logger: logger}
}

// Credential is the result of a successful account initialization.
type Credential struct {
	Token     string
	OwnerID   string
	WalletID  string
	ExpiresAt time.Time
}

// Initialize resolves the customer, creates their wallet and issues a
// credential. A customer whose wallet already exists gets ErrDuplicateWallet.
func (s *Service) Initialize(ctx context.Context, customerXID string) (Credential, error) {
	owner, err := s.ids.Resolve(ctx, customerXID)
	if err != nil {
		return Credential{}, err
	}

	w, err := s.wallets.Create(ctx, owner.ID)
	if err != nil {
		return Credential{}, err
	}

	token, exp, err := s.tokens.Issue(owner.ID)
	if err != nil {
		return Credential{}, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "account initialized",
			slog.String("owner_id", owner.ID),
			slog.String("wallet_id", w.ID),
		)
	}
	return Credential{Token: token, OwnerID: owner.ID, WalletID: w.ID, ExpiresAt: exp}, nil
}

// Authenticate verifies a credential and resolves the owner it is bound to.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Owner, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return identity.Owner{}, err
	}
	owner, err := s.ids.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, identity.ErrUnknownCustomer) {
			return identity.Owner{}, ErrInvalidCredential
		}
		return identity.Owner{}, err
	}
	return owner, nil
}
