package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// PostgresLedger persists transactions in PostgreSQL and applies balance
// deltas to the wallets table in the same database transaction.
type PostgresLedger struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db, now: time.Now}
}

// Exists reports whether a transaction already carries referenceID.
func (l *PostgresLedger) Exists(ctx context.Context, referenceID string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE reference_id = $1)`, referenceID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("lookup reference: %w", err)
	}
	return exists, nil
}

// Post locks the owner's wallet row, re-validates it, inserts the transaction
// guarded by the unique reference_id index and applies the delta.
func (l *PostgresLedger) Post(ctx context.Context, entry Entry) (Posting, error) {
	if err := entry.validate(); err != nil {
		return Posting{}, err
	}
	ownerID, err := uuid.Parse(entry.OwnerID)
	if err != nil {
		return Posting{}, wallet.ErrWalletNotFound
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Posting{}, fmt.Errorf("begin posting: %w", err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	w, err := wallet.ScanWallet(tx.QueryRow(ctx, wallet.SelectForUpdate, ownerID))
	if err != nil {
		return Posting{}, err
	}

	delta := entry.Kind.Delta(entry.Amount)
	if err := checkPosting(w, delta); err != nil {
		return Posting{}, err
	}

	record := Transaction{
		ID:          uuid.New().String(),
		WalletID:    w.ID,
		OwnerID:     w.OwnerID,
		ReferenceID: entry.ReferenceID,
		Kind:        entry.Kind,
		Amount:      entry.Amount,
		Status:      StatusSuccess,
		AppliedAt:   l.now().UTC(),
	}

	tag, err := tx.Exec(ctx, `INSERT INTO transactions (id, wallet_id, owner_id, reference_id, kind, amount, status, applied_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (reference_id) DO NOTHING`,
		uuid.MustParse(record.ID), uuid.MustParse(w.ID), ownerID, record.ReferenceID, string(record.Kind), record.Amount, record.Status, record.AppliedAt)
	if err != nil {
		return Posting{}, fmt.Errorf("insert transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Posting{}, ErrDuplicateReference
	}

	updated, err := wallet.ScanWallet(tx.QueryRow(ctx,
		`UPDATE wallets SET balance = balance + $1 WHERE id = $2 RETURNING `+wallet.Columns,
		delta, uuid.MustParse(w.ID)))
	if err != nil {
		return Posting{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Posting{}, fmt.Errorf("commit posting: %w", err)
	}

	return Posting{Transaction: record, Wallet: updated}, nil
}

// History lists a wallet's transactions in application order.
func (l *PostgresLedger) History(ctx context.Context, walletID string) ([]Transaction, error) {
	id, err := uuid.Parse(walletID)
	if err != nil {
		return nil, wallet.ErrWalletNotFound
	}
	rows, err := l.db.Query(ctx, `SELECT id, wallet_id, owner_id, reference_id, kind, amount, status, applied_at
        FROM transactions WHERE wallet_id = $1 ORDER BY applied_at, id`, id)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var (
			t                       Transaction
			txID, walletUUID, owner uuid.UUID
			kind                    string
			appliedAt               time.Time
		)
		if err := rows.Scan(&txID, &walletUUID, &owner, &t.ReferenceID, &kind, &t.Amount, &t.Status, &appliedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.ID = txID.String()
		t.WalletID = walletUUID.String()
		t.OwnerID = owner.String()
		t.Kind = Kind(kind)
		t.AppliedAt = appliedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}
