package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type InventoryService struct {
	items     *collection[domain.InventoryItem]
	alerts    *AlertService
	threshold int
}

// InventoryPatch holds the fields Update may change; nil means unchanged.
type InventoryPatch struct {
	Name         *string
	SKU          *string
	Category     *string
	Location     *string
	Quantity     *int
	ReorderPoint *int
	UnitPrice    *decimal.Decimal
}

func NewInventoryService(store port.KeyValueStore, alerts *AlertService, opts Options) *InventoryService {
	threshold := opts.LowStockThreshold
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	samples := func() []domain.InventoryItem { return defaultInventoryItems(threshold) }
	return &InventoryService{
		items:     newCollection(store, domain.KeyInventoryItems, func(i domain.InventoryItem) string { return i.ID }, samples, opts),
		alerts:    alerts,
		threshold: threshold,
	}
}

func (s *InventoryService) Threshold() int {
	return s.threshold
}

func (s *InventoryService) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.items.list(ctx)
}

func (s *InventoryService) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	return s.items.find(ctx, id)
}

func (s *InventoryService) Search(ctx context.Context, query string) ([]domain.InventoryItem, error) {
	return s.items.filter(ctx, func(i domain.InventoryItem) bool {
		return matches(query, i.Name, i.SKU, i.Category, i.Location)
	})
}

func (s *InventoryService) ByStatus(ctx context.Context, status domain.StockStatus) ([]domain.InventoryItem, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown stock status %q: %w", status, ErrValidation)
	}
	return s.items.filter(ctx, func(i domain.InventoryItem) bool {
		return i.Status == status
	})
}

func (s *InventoryService) Add(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return domain.InventoryItem{}, fmt.Errorf("inventory item name is required: %w", ErrValidation)
	}
	if item.UnitPrice.IsNegative() {
		return domain.InventoryItem{}, fmt.Errorf("unit price cannot be negative: %w", ErrValidation)
	}

	item.ID = uuid.New().String()
	if item.SKU == "" {
		item.SKU = skuFromName(item.Name)
	}
	s.refresh(&item)

	if err := s.items.add(ctx, item); err != nil {
		return domain.InventoryItem{}, err
	}
	if err := s.alerts.Sync(ctx, item); err != nil {
		return item, err
	}
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, id string, patch InventoryPatch) (domain.InventoryItem, error) {
	item, err := s.items.update(ctx, id, func(i *domain.InventoryItem) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("inventory item name is required: %w", ErrValidation)
			}
			i.Name = name
		}
		if patch.UnitPrice != nil {
			if patch.UnitPrice.IsNegative() {
				return fmt.Errorf("unit price cannot be negative: %w", ErrValidation)
			}
			i.UnitPrice = *patch.UnitPrice
		}
		if patch.SKU != nil {
			i.SKU = *patch.SKU
		}
		if patch.Category != nil {
			i.Category = *patch.Category
		}
		if patch.Location != nil {
			i.Location = *patch.Location
		}
		if patch.Quantity != nil {
			i.Quantity = *patch.Quantity
		}
		if patch.ReorderPoint != nil {
			i.ReorderPoint = *patch.ReorderPoint
		}
		s.refresh(i)
		return nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	return item, s.alerts.Sync(ctx, item)
}

// AdjustQuantity adds delta (negative to remove stock) and re-derives status.
func (s *InventoryService) AdjustQuantity(ctx context.Context, id string, delta int) (domain.InventoryItem, error) {
	item, err := s.items.update(ctx, id, func(i *domain.InventoryItem) error {
		i.Quantity += delta
		s.refresh(i)
		return nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	return item, s.alerts.Sync(ctx, item)
}

// Take removes n units only when at least n are on hand.
func (s *InventoryService) Take(ctx context.Context, id string, n int) (domain.InventoryItem, error) {
	if n <= 0 {
		return domain.InventoryItem{}, fmt.Errorf("take needs a positive quantity, got %d: %w", n, ErrValidation)
	}
	item, err := s.items.update(ctx, id, func(i *domain.InventoryItem) error {
		if i.Quantity < n {
			return fmt.Errorf("%s has %d, wanted %d: %w", i.Name, i.Quantity, n, ErrInsufficientStock)
		}
		i.Quantity -= n
		s.refresh(i)
		return nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}

	return item, s.alerts.Sync(ctx, item)
}

func (s *InventoryService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.items.remove(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.alerts.Clear(ctx, id)
}

func (s *InventoryService) refresh(i *domain.InventoryItem) {
	i.Status = domain.DeriveStockStatus(i.Quantity, i.Threshold(s.threshold))
	i.LastUpdated = time.Now().UTC()
}

func skuFromName(name string) string {
	return strings.ToUpper(slug.Make(name))
}
