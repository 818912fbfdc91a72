package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied idempotently at startup. reference_id carries the global
// uniqueness constraint the ledger relies on for duplicate detection.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS owners (
        id           UUID PRIMARY KEY,
        customer_xid TEXT NOT NULL UNIQUE,
        created_at   TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS wallets (
        id          UUID PRIMARY KEY,
        owner_id    UUID NOT NULL UNIQUE REFERENCES owners (id),
        balance     BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
        status      TEXT NOT NULL CHECK (status IN ('enabled', 'disabled')),
        enabled_at  TIMESTAMPTZ,
        disabled_at TIMESTAMPTZ,
        created_at  TIMESTAMPTZ NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS transactions (
        id           UUID PRIMARY KEY,
        wallet_id    UUID NOT NULL REFERENCES wallets (id),
        owner_id     UUID NOT NULL,
        reference_id TEXT NOT NULL UNIQUE,
        kind         TEXT NOT NULL CHECK (kind IN ('deposit', 'withdraw')),
        amount       BIGINT NOT NULL CHECK (amount > 0),
        status       TEXT NOT NULL,
        applied_at   TIMESTAMPTZ NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS transactions_wallet_applied_idx ON transactions (wallet_id, applied_at)`,
}

// EnsureSchema creates the tables used by the Postgres repositories.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
