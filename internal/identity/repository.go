package identity

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

var (
	// ErrUnknownCustomer is returned when no owner is mapped to a customer identifier.
	ErrUnknownCustomer = errors.New("customer_xid does not map to a valid user")

	// ErrCustomerExists is returned when registering an already mapped customer identifier.
	ErrCustomerExists = errors.New("customer already registered")
)

// Repository persists owners.
type Repository interface {
	Create(ctx context.Context, owner Owner) error
	FindByCustomerXID(ctx context.Context, customerXID string) (Owner, error)
	FindByID(ctx context.Context, id string) (Owner, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new owner.
func (r *PostgresRepository) Create(ctx context.Context, owner Owner) error {
	ownerID, err := uuid.Parse(owner.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO owners (id, customer_xid, created_at) VALUES ($1, $2, $3)`,
		ownerID, owner.CustomerXID, owner.CreatedAt.UTC())
	if infra.IsUniqueViolation(err) {
		return ErrCustomerExists
	}
	if err != nil {
		return fmt.Errorf("insert owner: %w", err)
	}
	return nil
}

// FindByCustomerXID resolves an owner from its external identifier.
func (r *PostgresRepository) FindByCustomerXID(ctx context.Context, customerXID string) (Owner, error) {
	row := r.db.QueryRow(ctx, `SELECT id, customer_xid, created_at FROM owners WHERE customer_xid = $1`, customerXID)
	return scanOwner(row)
}

// FindByID fetches an owner by internal identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Owner, error) {
	ownerID, err := uuid.Parse(id)
	if err != nil {
		return Owner{}, ErrUnknownCustomer
	}
	row := r.db.QueryRow(ctx, `SELECT id, customer_xid, created_at FROM owners WHERE id = $1`, ownerID)
	return scanOwner(row)
}

func scanOwner(row pgx.Row) (Owner, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		owner     Owner
	)
	if err := row.Scan(&id, &owner.CustomerXID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Owner{}, ErrUnknownCustomer
		}
		return Owner{}, fmt.Errorf("scan owner: %w", err)
	}
	owner.ID = id.String()
	owner.CreatedAt = createdAt.UTC()
	return owner, nil
}
