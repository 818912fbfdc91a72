// Command customers registers customer_xid values in the account directory so
// they can later call POST /api/v1/init.
//
//	customers [-env .env] <customer_xid>...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/congo-pay/mini_wallet/internal/config"
	"github.com/congo-pay/mini_wallet/internal/identity"
	"github.com/congo-pay/mini_wallet/internal/infra"
	"github.com/congo-pay/mini_wallet/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: customers [-env .env] <customer_xid>...")
		os.Exit(2)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL must be set")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.AppName+"-customers")
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := infra.EnsureSchema(ctx, db); err != nil {
		logger.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	ids := identity.NewService(identity.NewPostgresRepository(db))
	failed := register(ctx, ids, flag.Args(), os.Stdout, func(xid string, err error) {
		logger.Error("register customer", "customer_xid", xid, "error", err)
	})
	if failed > 0 {
		os.Exit(1)
	}
}

type registrar interface {
	Register(ctx context.Context, customerXID string) (identity.Owner, error)
	Resolve(ctx context.Context, customerXID string) (identity.Owner, error)
}

// register prints "<customer_xid>\t<owner_id>" per identifier, resolving ones
// that already exist, and returns how many could not be processed.
func register(ctx context.Context, ids registrar, xids []string, out io.Writer, onErr func(string, error)) int {
	failed := 0
	for _, xid := range xids {
		owner, err := ids.Register(ctx, xid)
		if errors.Is(err, identity.ErrCustomerExists) {
			owner, err = ids.Resolve(ctx, xid)
		}
		if err != nil {
			onErr(xid, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", owner.CustomerXID, owner.ID)
	}
	return failed
}
