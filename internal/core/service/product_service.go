package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type ProductService struct {
	products *collection[domain.Product]
}

type ProductPatch struct {
	Name        *string
	SKU         *string
	Category    *string
	Description *string
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	Vendor      *string
	Status      *domain.ProductStatus
}

func NewProductService(store port.KeyValueStore, opts Options) *ProductService {
	return &ProductService{
		products: newCollection(store, domain.KeyProducts, func(p domain.Product) string { return p.ID }, defaultProducts, opts),
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.list(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.products.find(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.products.filter(ctx, func(p domain.Product) bool {
		return matches(query, p.Name, p.SKU, p.Category, p.Description, p.Vendor)
	})
}

func (s *ProductService) Add(ctx context.Context, p domain.Product) (domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("product name is required: %w", ErrValidation)
	}
	if err := validatePricing(p.Price, p.Cost); err != nil {
		return domain.Product{}, err
	}

	p.ID = uuid.New().String()
	if p.SKU == "" {
		p.SKU = skuFromName(p.Name)
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	if !p.Status.Valid() {
		return domain.Product{}, fmt.Errorf("unknown product status %q: %w", p.Status, ErrValidation)
	}
	p.CreatedAt = time.Now().UTC()

	if err := s.products.add(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch ProductPatch) (domain.Product, error) {
	return s.products.update(ctx, id, func(p *domain.Product) error {
		price, cost := p.Price, p.Cost
		if patch.Price != nil {
			price = *patch.Price
		}
		if patch.Cost != nil {
			cost = *patch.Cost
		}
		if err := validatePricing(price, cost); err != nil {
			return err
		}
		p.Price, p.Cost = price, cost

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("product name is required: %w", ErrValidation)
			}
			p.Name = name
		}
		if patch.SKU != nil {
			p.SKU = *patch.SKU
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Vendor != nil {
			p.Vendor = *patch.Vendor
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return fmt.Errorf("unknown product status %q: %w", *patch.Status, ErrValidation)
			}
			p.Status = *patch.Status
		}
		return nil
	})
}

func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	return s.products.remove(ctx, id)
}

func validatePricing(price, cost decimal.Decimal) error {
	if price.IsNegative() || cost.IsNegative() {
		return fmt.Errorf("price and cost cannot be negative: %w", ErrValidation)
	}
	return nil
}
