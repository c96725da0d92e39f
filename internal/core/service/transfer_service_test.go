package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/invstrar/internal/core/domain"
)

func validTransfer() domain.Transfer {
	return domain.Transfer{
		Product:      "Wireless Mouse",
		Quantity:     5,
		FromLocation: "Main Warehouse",
		ToLocation:   "Downtown Store",
		RequestedBy:  "Sam Okafor",
	}
}

func TestTransferAdd(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{})

	tr, err := svc.Add(context.Background(), validTransfer())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tr.Status != domain.TransferStatusPending {
		t.Errorf("expected Pending, got %s", tr.Status)
	}
	if tr.ID == "" || tr.CreatedAt.IsZero() {
		t.Error("expected id and createdAt")
	}
}

func TestTransferAdd_DoesNotCheckReferences(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{})

	tr := validTransfer()
	tr.Product = "Product nobody has heard of"
	tr.ToLocation = "Nowhere"
	if _, err := svc.Add(context.Background(), tr); err != nil {
		t.Errorf("expected denormalized names to be accepted, got %v", err)
	}
}

func TestTransferAdd_Validation(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{})

	bad := []func(*domain.Transfer){
		func(t *domain.Transfer) { t.Product = "" },
		func(t *domain.Transfer) { t.Quantity = 0 },
		func(t *domain.Transfer) { t.ToLocation = "" },
		func(t *domain.Transfer) { t.ToLocation = "main warehouse" },
	}
	for i, mutate := range bad {
		tr := validTransfer()
		mutate(&tr)
		if _, err := svc.Add(context.Background(), tr); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestTransferUpdateStatus(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{})
	ctx := context.Background()

	tr, _ := svc.Add(ctx, validTransfer())

	if _, err := svc.UpdateStatus(ctx, tr.ID, domain.TransferStatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for Pending -> Completed, got %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, tr.ID, domain.TransferStatusInTransit)
	if err != nil {
		t.Fatalf("to in transit: %v", err)
	}
	if updated.Status != domain.TransferStatusInTransit {
		t.Errorf("expected In Transit, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, tr.ID, domain.TransferStatusCompleted); err != nil {
		t.Fatalf("to completed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, tr.ID, domain.TransferStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected completed transfer to be final, got %v", err)
	}
}

func TestTransferUpdate_OnlyWhilePending(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{})
	ctx := context.Background()

	tr, _ := svc.Add(ctx, validTransfer())

	qty := 8
	updated, err := svc.Update(ctx, tr.ID, TransferPatch{Quantity: &qty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 8 {
		t.Errorf("expected quantity 8, got %d", updated.Quantity)
	}

	zero := 0
	if _, err := svc.Update(ctx, tr.ID, TransferPatch{Quantity: &zero}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	svc.UpdateStatus(ctx, tr.ID, domain.TransferStatusInTransit)
	if _, err := svc.Update(ctx, tr.ID, TransferPatch{Quantity: &qty}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition once in transit, got %v", err)
	}
}

func TestTransferSearchAndByStatus(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{SampleData: true})
	ctx := context.Background()

	pending, _ := svc.ByStatus(ctx, domain.TransferStatusPending)
	if len(pending) != 1 {
		t.Errorf("expected one pending sample transfer, got %d", len(pending))
	}

	found, _ := svc.Search(ctx, "monitor")
	if len(found) != 1 || found[0].Product != "Monitor Stand" {
		t.Errorf("expected Monitor Stand transfer, got %+v", found)
	}
}

func TestTransfer_RejectsUnknownStatus(t *testing.T) {
	svc := NewTransferService(newMockStore(), Options{SampleData: true})
	ctx := context.Background()

	if _, err := svc.ByStatus(ctx, "Lost"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation filtering by unknown status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "1", "Lost"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown target status, got %v", err)
	}
}
