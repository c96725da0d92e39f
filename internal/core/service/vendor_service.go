package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

const maxVendorRating = 5

type VendorService struct {
	vendors *collection[domain.Vendor]
}

type VendorPatch struct {
	Name             *string
	ContactName      *string
	Email            *string
	Phone            *string
	Address          *string
	Category         *string
	Rating           *float64
	Status           *domain.VendorStatus
	ProductsSupplied *int
}

func NewVendorService(store port.KeyValueStore, opts Options) *VendorService {
	return &VendorService{
		vendors: newCollection(store, domain.KeyVendors, func(v domain.Vendor) string { return v.ID }, defaultVendors, opts),
	}
}

func (s *VendorService) List(ctx context.Context) ([]domain.Vendor, error) {
	return s.vendors.list(ctx)
}

func (s *VendorService) Get(ctx context.Context, id string) (domain.Vendor, error) {
	return s.vendors.find(ctx, id)
}

func (s *VendorService) Search(ctx context.Context, query string) ([]domain.Vendor, error) {
	return s.vendors.filter(ctx, func(v domain.Vendor) bool {
		return matches(query, v.Name, v.ContactName, v.Email, v.Category)
	})
}

func (s *VendorService) ByStatus(ctx context.Context, status domain.VendorStatus) ([]domain.Vendor, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown vendor status %q: %w", status, ErrValidation)
	}
	return s.vendors.filter(ctx, func(v domain.Vendor) bool { return v.Status == status })
}

func (s *VendorService) Add(ctx context.Context, v domain.Vendor) (domain.Vendor, error) {
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return domain.Vendor{}, fmt.Errorf("vendor name is required: %w", ErrValidation)
	}
	if err := validateRating(v.Rating); err != nil {
		return domain.Vendor{}, err
	}

	v.ID = uuid.New().String()
	if v.Status == "" {
		v.Status = domain.VendorStatusActive
	}
	if !v.Status.Valid() {
		return domain.Vendor{}, fmt.Errorf("unknown vendor status %q: %w", v.Status, ErrValidation)
	}

	if err := s.vendors.add(ctx, v); err != nil {
		return domain.Vendor{}, err
	}
	return v, nil
}

func (s *VendorService) Update(ctx context.Context, id string, patch VendorPatch) (domain.Vendor, error) {
	return s.vendors.update(ctx, id, func(v *domain.Vendor) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("vendor name is required: %w", ErrValidation)
			}
			v.Name = name
		}
		if patch.Rating != nil {
			if err := validateRating(*patch.Rating); err != nil {
				return err
			}
			v.Rating = *patch.Rating
		}
		if patch.ContactName != nil {
			v.ContactName = *patch.ContactName
		}
		if patch.Email != nil {
			v.Email = *patch.Email
		}
		if patch.Phone != nil {
			v.Phone = *patch.Phone
		}
		if patch.Address != nil {
			v.Address = *patch.Address
		}
		if patch.Category != nil {
			v.Category = *patch.Category
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return fmt.Errorf("unknown vendor status %q: %w", *patch.Status, ErrValidation)
			}
			v.Status = *patch.Status
		}
		if patch.ProductsSupplied != nil {
			v.ProductsSupplied = *patch.ProductsSupplied
		}
		return nil
	})
}

func (s *VendorService) Delete(ctx context.Context, id string) (bool, error) {
	return s.vendors.remove(ctx, id)
}

func validateRating(r float64) error {
	if r < 0 || r > maxVendorRating {
		return fmt.Errorf("vendor rating must be between 0 and %d: %w", maxVendorRating, ErrValidation)
	}
	return nil
}
