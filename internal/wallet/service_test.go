package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *Service {
	svc := NewService(NewMemoryRepository())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc
}

func TestServiceCreateStartsDisabledAndEmpty(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	ownerID := uuid.NewString()

	w, err := svc.Create(ctx, ownerID)
	if err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if w.Balance != 0 || w.Status != StatusDisabled {
		t.Fatalf("unexpected new wallet: %+v", w)
	}

	fetched, err := svc.Get(ctx, ownerID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if fetched.ID != w.ID || fetched.OwnerID != ownerID {
		t.Fatalf("expected wallet %s, got %s", w.ID, fetched.ID)
	}
}

func TestServiceCreateDuplicate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	ownerID := uuid.NewString()

	if _, err := svc.Create(ctx, ownerID); err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	if _, err := svc.Create(ctx, ownerID); !errors.Is(err, ErrDuplicateWallet) {
		t.Fatalf("expected ErrDuplicateWallet, got %v", err)
	}
}

func TestServiceCreateRejectsBadOwner(t *testing.T) {
	if _, err := newTestService().Create(context.Background(), "not-a-uuid"); err == nil {
		t.Fatal("expected invalid owner id error")
	}
}

func TestServiceGetMissing(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, uuid.NewString()); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
	if _, err := svc.Enable(ctx, uuid.NewString()); !errors.Is(err, ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound on enable, got %v", err)
	}
}

func TestServiceStatusTransitionsAreIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	ownerID := uuid.NewString()
	if _, err := svc.Create(ctx, ownerID); err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	first, err := svc.Enable(ctx, ownerID)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !first.Enabled() || first.EnabledAt == nil {
		t.Fatalf("expected enabled wallet with timestamp, got %+v", first)
	}

	later := first.EnabledAt.Add(time.Hour)
	svc.now = func() time.Time { return later }

	second, err := svc.Enable(ctx, ownerID)
	if err != nil {
		t.Fatalf("enable again: %v", err)
	}
	if !second.EnabledAt.Equal(*first.EnabledAt) {
		t.Fatalf("repeated enable must not restamp: %v vs %v", second.EnabledAt, first.EnabledAt)
	}

	for i := 0; i < 2; i++ {
		w, err := svc.Disable(ctx, ownerID)
		if err != nil {
			t.Fatalf("disable #%d: %v", i, err)
		}
		if w.Status != StatusDisabled || w.DisabledAt == nil || !w.DisabledAt.Equal(later) {
			t.Fatalf("unexpected disabled wallet: %+v", w)
		}
	}
}

func TestServiceViewRejectsDisabled(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	ownerID := uuid.NewString()
	if _, err := svc.Create(ctx, ownerID); err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	if _, err := svc.View(ctx, ownerID); !errors.Is(err, ErrWalletDisabled) {
		t.Fatalf("expected ErrWalletDisabled, got %v", err)
	}
	if _, err := svc.Enable(ctx, ownerID); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if _, err := svc.View(ctx, ownerID); err != nil {
		t.Fatalf("view enabled wallet: %v", err)
	}
}

func TestServiceSetStatusRejectsUnknown(t *testing.T) {
	svc := newTestService()
	if _, err := svc.SetStatus(context.Background(), uuid.NewString(), Status("frozen")); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestMemoryRepositoryMutateRollsBackOnError(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	ownerID := uuid.NewString()
	if err := repo.Create(ctx, Wallet{ID: uuid.NewString(), OwnerID: ownerID, Status: StatusEnabled}); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	_, err := repo.Mutate(ctx, ownerID, func(w *Wallet) error {
		w.Balance = 500
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	w, _ := repo.GetByOwner(ctx, ownerID)
	if w.Balance != 0 {
		t.Fatalf("failed mutation leaked balance %d", w.Balance)
	}
}
