package service

import (
	"context"
	"testing"

	"github.com/rl1809/invstrar/internal/core/domain"
)

func TestAlerts_ReadAndDismiss(t *testing.T) {
	svc, alerts, _ := newInventoryFixture(30)
	ctx := context.Background()

	svc.Add(ctx, domain.InventoryItem{Name: "Widget", Quantity: 5})
	svc.Add(ctx, domain.InventoryItem{Name: "Gadget", Quantity: 0})
	svc.Add(ctx, domain.InventoryItem{Name: "Gizmo", Quantity: 500})

	unread, err := alerts.Unread(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread alerts, got %d", len(unread))
	}

	if _, err := alerts.MarkRead(ctx, unread[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, _ = alerts.Unread(ctx)
	if len(unread) != 1 {
		t.Errorf("expected 1 unread alert, got %d", len(unread))
	}

	if err := alerts.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	unread, _ = alerts.Unread(ctx)
	if len(unread) != 0 {
		t.Errorf("expected no unread alerts, got %d", len(unread))
	}

	list, _ := alerts.List(ctx)
	ok, err := alerts.Dismiss(ctx, list[0].ID)
	if err != nil || !ok {
		t.Fatalf("expected dismiss to succeed, got ok=%v err=%v", ok, err)
	}
	ok, err = alerts.Dismiss(ctx, list[0].ID)
	if err != nil || ok {
		t.Errorf("expected second dismiss to be a no-op, got ok=%v err=%v", ok, err)
	}

	list, _ = alerts.List(ctx)
	if len(list) != 1 {
		t.Errorf("expected 1 alert left, got %d", len(list))
	}
}

func TestAlerts_SyncKeepsOnePerItem(t *testing.T) {
	_, alerts, _ := newInventoryFixture(30)
	ctx := context.Background()

	item := domain.InventoryItem{ID: "item-1", Name: "Widget", Quantity: 4, Status: domain.StockStatusLowStock}
	for i := 0; i < 3; i++ {
		if err := alerts.Sync(ctx, item); err != nil {
			t.Fatalf("sync: %v", err)
		}
	}

	list, _ := alerts.List(ctx)
	if len(list) != 1 || list[0].ItemID != "item-1" {
		t.Fatalf("expected a single alert for item-1, got %+v", list)
	}

	item.Status = domain.StockStatusInStock
	if err := alerts.Sync(ctx, item); err != nil {
		t.Fatalf("sync: %v", err)
	}
	list, _ = alerts.List(ctx)
	if len(list) != 0 {
		t.Errorf("expected alert cleared, got %+v", list)
	}
}
