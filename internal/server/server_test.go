package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/mini_wallet/internal/config"
	"github.com/congo-pay/mini_wallet/internal/logging"
)

func TestNewInMemoryServer(t *testing.T) {
	cfg := config.Config{AppName: "MiniWallet", AppEnv: "development", Port: "0", TokenSecret: "s", TokenTTL: time.Hour}
	srv, err := New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := srv.App().Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/wallet", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected %d got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != fiber.MIMEApplicationJSON {
		t.Fatalf("expected json error envelope, got content type %q", ct)
	}
}

func TestNewRejectsMissingBackendsInProduction(t *testing.T) {
	cfg := config.Config{AppName: "MiniWallet", AppEnv: "production", TokenSecret: "s"}
	if _, err := New(cfg, nil, nil, logging.Discard()); err == nil {
		t.Fatal("expected error without database in production")
	}
}
