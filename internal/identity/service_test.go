package identity

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndResolve(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	owner, err := svc.Register(ctx, "ea0212d3-abd6-406f-8c67-868e814a2436")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if owner.ID == "" {
		t.Fatal("expected owner id to be assigned")
	}

	resolved, err := svc.Resolve(ctx, " ea0212d3-abd6-406f-8c67-868e814a2436 ")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, resolved.ID)
	}

	byID, err := svc.Get(ctx, owner.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if byID.CustomerXID != owner.CustomerXID {
		t.Fatalf("expected customer %s, got %s", owner.CustomerXID, byID.CustomerXID)
	}
}

func TestRegisterDuplicateCustomer(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "cust-1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "cust-1"); !errors.Is(err, ErrCustomerExists) {
		t.Fatalf("expected ErrCustomerExists, got %v", err)
	}
}

func TestResolveUnknownCustomer(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	if _, err := svc.Resolve(context.Background(), "nobody"); !errors.Is(err, ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), ""); !errors.Is(err, ErrUnknownCustomer) {
		t.Fatalf("expected ErrUnknownCustomer for blank id, got %v", err)
	}
}
