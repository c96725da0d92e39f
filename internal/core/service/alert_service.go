package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

// AlertService keeps at most one alert per inventory item, mirroring its
// current stock status.
type AlertService struct {
	alerts *collection[domain.AlertItem]
}

// NewAlertService serves, for an absent key, the alerts of the sample
// inventory so both read the same threshold.
func NewAlertService(store port.KeyValueStore, opts Options) *AlertService {
	samples := func() []domain.AlertItem { return defaultAlerts(opts.LowStockThreshold) }
	return &AlertService{
		alerts: newCollection(store, domain.KeyInventoryAlerts, func(a domain.AlertItem) string { return a.ID }, samples, opts),
	}
}

func (s *AlertService) List(ctx context.Context) ([]domain.AlertItem, error) {
	return s.alerts.list(ctx)
}

func (s *AlertService) Unread(ctx context.Context) ([]domain.AlertItem, error) {
	return s.alerts.filter(ctx, func(a domain.AlertItem) bool { return !a.Read })
}

func (s *AlertService) MarkRead(ctx context.Context, id string) (domain.AlertItem, error) {
	return s.alerts.update(ctx, id, func(a *domain.AlertItem) error {
		a.Read = true
		return nil
	})
}

func (s *AlertService) MarkAllRead(ctx context.Context) error {
	s.alerts.mu.Lock()
	defer s.alerts.mu.Unlock()

	alerts, err := s.alerts.load(ctx)
	if err != nil {
		return err
	}
	for i := range alerts {
		alerts[i].Read = true
	}
	return s.alerts.save(ctx, alerts)
}

func (s *AlertService) Dismiss(ctx context.Context, id string) (bool, error) {
	return s.alerts.remove(ctx, id)
}

// Sync upserts or clears the alert for item based on item.Status.
// A kind change marks the alert unread again.
func (s *AlertService) Sync(ctx context.Context, item domain.InventoryItem) error {
	if item.Status == domain.StockStatusInStock {
		return s.Clear(ctx, item.ID)
	}

	next := alertFor(item)

	s.alerts.mu.Lock()
	defer s.alerts.mu.Unlock()

	alerts, err := s.alerts.load(ctx)
	if err != nil {
		return err
	}

	for i := range alerts {
		if alerts[i].ItemID != item.ID {
			continue
		}
		if alerts[i].Kind != next.Kind {
			alerts[i].Read = false
			alerts[i].CreatedAt = time.Now().UTC()
		}
		alerts[i].ItemName = next.ItemName
		alerts[i].Kind = next.Kind
		alerts[i].Severity = next.Severity
		alerts[i].Message = next.Message
		return s.alerts.save(ctx, alerts)
	}

	next.ID = uuid.New().String()
	next.CreatedAt = time.Now().UTC()
	return s.alerts.save(ctx, append(alerts, next))
}

// alertFor builds the unread alert for an item that is not in stock.
func alertFor(item domain.InventoryItem) domain.AlertItem {
	a := domain.AlertItem{
		ItemID:   item.ID,
		ItemName: item.Name,
		Kind:     domain.AlertKindLowStock,
		Severity: domain.AlertSeverityWarning,
		Message:  fmt.Sprintf("%s is running low (%d left)", item.Name, item.Quantity),
	}
	if item.Status == domain.StockStatusOutOfStock {
		a.Kind = domain.AlertKindOutOfStock
		a.Severity = domain.AlertSeverityCritical
		a.Message = fmt.Sprintf("%s is out of stock", item.Name)
	}
	return a
}

// Clear drops every alert raised for itemID.
func (s *AlertService) Clear(ctx context.Context, itemID string) error {
	s.alerts.mu.Lock()
	defer s.alerts.mu.Unlock()

	alerts, err := s.alerts.load(ctx)
	if err != nil {
		return err
	}

	kept := alerts[:0]
	for _, a := range alerts {
		if a.ItemID != itemID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(alerts) {
		return nil
	}
	return s.alerts.save(ctx, kept)
}
