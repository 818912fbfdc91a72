package routes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/congo-pay/mini_wallet/internal/auth"
	"github.com/congo-pay/mini_wallet/internal/config"
	"github.com/congo-pay/mini_wallet/internal/identity"
	"github.com/congo-pay/mini_wallet/internal/ledger"
	"github.com/congo-pay/mini_wallet/internal/middleware"
	"github.com/congo-pay/mini_wallet/internal/notification"
	"github.com/congo-pay/mini_wallet/internal/payments"
	"github.com/congo-pay/mini_wallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// every store falls back to its in-memory implementation.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though config also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log in desired format: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var (
		identityRepo  identity.Repository
		walletRepo    wallet.Repository
		ledgerBackend ledger.Ledger
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		walletRepo = wallet.NewPostgresRepository(d.DB)
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		memWallets := wallet.NewMemoryRepository()
		identityRepo = identity.NewMemoryRepository()
		walletRepo = memWallets
		ledgerBackend = ledger.NewInMemory(memWallets)
	}

	identitySvc := identity.NewService(identityRepo)
	if err := seedCustomers(context.Background(), identitySvc, d.Cfg.SeedCustomers, d.Logger); err != nil {
		return err
	}
	walletSvc := wallet.NewService(walletRepo)
	notifier := notification.NewLoggerNotifier(d.Logger)
	paymentSvc := payments.NewService(walletSvc, ledgerBackend, notifier, d.Logger)
	tokens := auth.NewTokens(d.Cfg.TokenSecret, d.Cfg.TokenTTL, d.Cfg.AppName)
	authSvc := auth.NewService(identitySvc, walletSvc, tokens, d.Logger)

	authHandler := auth.NewHandler(authSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	paymentHandler := payments.NewHandler(paymentSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": middleware.GetRequestID(c),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	RegisterInitRoute(api, authHandler, middleware.InitRateLimit(d.Cache, d.Cfg.InitRateLimit))

	// Protected routes
	protected := api.Group("", middleware.RequireCredential(authSvc))
	RegisterWalletRoutes(protected, walletHandler)
	var idem fiber.Handler
	if d.Cache != nil {
		idem = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterPaymentRoutes(protected, paymentHandler, idem)

	return nil
}

func seedCustomers(ctx context.Context, ids *identity.Service, xids []string, logger *slog.Logger) error {
	for _, xid := range xids {
		owner, err := ids.Register(ctx, xid)
		if errors.Is(err, identity.ErrCustomerExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", xid, err)
		}
		logger.Info("customer seeded", slog.String("customer_xid", xid), slog.String("owner_id", owner.ID))
	}
	return nil
}
