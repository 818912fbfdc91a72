package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/congo-pay/mini_wallet/internal/infra"
)

// Repository persists wallet records. Balance is read-only here; only the
// ledger posts balance deltas.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) error
	GetByOwner(ctx context.Context, ownerID string) (Wallet, error)
	SetStatus(ctx context.Context, ownerID string, status Status, at time.Time) (Wallet, error)
}

// Columns is the canonical wallet column list understood by ScanWallet.
const Columns = `id, owner_id, balance, status, enabled_at, disabled_at, created_at`

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record; the unique owner_id index rejects a second wallet.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) error {
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return err
	}
	ownerID, err := uuid.Parse(wallet.OwnerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, owner_id, balance, status, created_at)
        VALUES ($1, $2, $3, $4, $5)`, walletID, ownerID, wallet.Balance, string(wallet.Status), wallet.CreatedAt.UTC())
	if infra.IsUniqueViolation(err) {
		return ErrDuplicateWallet
	}
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByOwner fetches the wallet held by an owner.
func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (Wallet, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return Wallet{}, ErrWalletNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+Columns+` FROM wallets WHERE owner_id = $1`, ownerUUID)
	return ScanWallet(row)
}

// SetStatus moves the wallet to status. The timestamps are only touched when
// the stored status differs, so repeating a transition is a no-op.
func (r *PostgresRepository) SetStatus(ctx context.Context, ownerID string, status Status, at time.Time) (Wallet, error) {
	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return Wallet{}, ErrWalletNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE wallets SET
            enabled_at  = CASE WHEN $2::text = 'enabled'  AND status <> 'enabled'  THEN $3::timestamptz ELSE enabled_at END,
            disabled_at = CASE WHEN $2::text = 'disabled' AND status <> 'disabled' THEN $3::timestamptz ELSE disabled_at END,
            status      = $2::text
        WHERE owner_id = $1
        RETURNING `+Columns, ownerUUID, string(status), at.UTC())
	return ScanWallet(row)
}

// ScanWallet decodes a row selected with the canonical wallet column list.
func ScanWallet(row pgx.Row) (Wallet, error) {
	var (
		w          Wallet
		id         uuid.UUID
		ownerID    uuid.UUID
		status     string
		enabledAt  *time.Time
		disabledAt *time.Time
		createdAt  time.Time
	)
	if err := row.Scan(&id, &ownerID, &w.Balance, &status, &enabledAt, &disabledAt, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrWalletNotFound
		}
		return Wallet{}, fmt.Errorf("scan wallet: %w", err)
	}
	w.ID = id.String()
	w.OwnerID = ownerID.String()
	w.Status = Status(status)
	w.EnabledAt = utcPtr(enabledAt)
	w.DisabledAt = utcPtr(disabledAt)
	w.CreatedAt = createdAt.UTC()
	return w, nil
}

// SelectForUpdate is the row-locking query used by the ledger when posting.
const SelectForUpdate = `SELECT ` + Columns + ` FROM wallets WHERE owner_id = $1 FOR UPDATE`

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
