package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
)

func TestLocationAdd_Defaults(t *testing.T) {
	svc := NewLocationService(newMockStore(), Options{})

	loc, err := svc.Add(context.Background(), domain.Location{Name: "North Depot", Capacity: 500})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if loc.Code != "north-depot" {
		t.Errorf("expected code north-depot, got %s", loc.Code)
	}
	if loc.Type != domain.LocationTypeWarehouse || loc.Status != domain.LocationStatusActive {
		t.Errorf("expected Warehouse/Active defaults, got %s/%s", loc.Type, loc.Status)
	}

	if _, err := svc.Add(context.Background(), domain.Location{Name: "Bad", Capacity: -1}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestLocationUpdate(t *testing.T) {
	svc := NewLocationService(newMockStore(), Options{})
	ctx := context.Background()

	loc, _ := svc.Add(ctx, domain.Location{Name: "North Depot"})

	inactive := domain.LocationStatusInactive
	manager := "Lee Park"
	updated, err := svc.Update(ctx, loc.ID, LocationPatch{Status: &inactive, Manager: &manager})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.LocationStatusInactive || updated.Manager != "Lee Park" {
		t.Errorf("unexpected update result %+v", updated)
	}

	found, _ := svc.Search(ctx, "lee")
	if len(found) != 1 {
		t.Errorf("expected search by manager, got %d", len(found))
	}
}

func TestProductAdd(t *testing.T) {
	svc := NewProductService(newMockStore(), Options{})
	ctx := context.Background()

	p, err := svc.Add(ctx, domain.Product{
		Name:  "Standing Desk",
		Price: decimal.RequireFromString("399.00"),
		Cost:  decimal.RequireFromString("250.50"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.SKU != "STANDING-DESK" || p.Status != domain.ProductStatusActive {
		t.Errorf("expected derived SKU and Active status, got %s/%s", p.SKU, p.Status)
	}
	if !p.Margin().Equal(decimal.RequireFromString("148.50")) {
		t.Errorf("expected margin 148.50, got %s", p.Margin())
	}

	negative := decimal.NewFromInt(-5)
	if _, err := svc.Update(ctx, p.ID, ProductPatch{Cost: &negative}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}

	stored, _ := svc.Get(ctx, p.ID)
	if !stored.Cost.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("expected rejected update to leave cost, got %s", stored.Cost)
	}
}

func TestVendor(t *testing.T) {
	svc := NewVendorService(newMockStore(), Options{})
	ctx := context.Background()

	if _, err := svc.Add(ctx, domain.Vendor{Name: "Overrated", Rating: 6}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for rating 6, got %v", err)
	}

	v, err := svc.Add(ctx, domain.Vendor{Name: "PaperCo", Email: "hello@paperco.example", Rating: 4})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if v.Status != domain.VendorStatusActive {
		t.Errorf("expected Active, got %s", v.Status)
	}

	inactive := domain.VendorStatusInactive
	svc.Update(ctx, v.ID, VendorPatch{Status: &inactive})

	active, _ := svc.ByStatus(ctx, domain.VendorStatusActive)
	if len(active) != 0 {
		t.Errorf("expected no active vendors, got %d", len(active))
	}

	found, _ := svc.Search(ctx, "paperco.example")
	if len(found) != 1 {
		t.Errorf("expected search by email, got %d", len(found))
	}
}

func TestCatalog_RejectsUnknownEnums(t *testing.T) {
	ctx := context.Background()

	locations := NewLocationService(newMockStore(), Options{})
	if _, err := locations.Add(ctx, domain.Location{Name: "Shed", Type: "Garage"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown location type, got %v", err)
	}
	if _, err := locations.Add(ctx, domain.Location{Name: "Shed", Status: "Open"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown location status, got %v", err)
	}
	loc, _ := locations.Add(ctx, domain.Location{Name: "Shed"})
	badType := domain.LocationType("Garage")
	if _, err := locations.Update(ctx, loc.ID, LocationPatch{Type: &badType}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation updating location type, got %v", err)
	}
	badLocStatus := domain.LocationStatus("Open")
	if _, err := locations.Update(ctx, loc.ID, LocationPatch{Status: &badLocStatus}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation updating location status, got %v", err)
	}
	if stored, _ := locations.Get(ctx, loc.ID); stored.Type != domain.LocationTypeWarehouse || stored.Status != domain.LocationStatusActive {
		t.Errorf("expected rejected updates to leave the location alone, got %+v", stored)
	}

	products := NewProductService(newMockStore(), Options{})
	if _, err := products.Add(ctx, domain.Product{Name: "Lamp", Status: "Whatever"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown product status, got %v", err)
	}
	p, _ := products.Add(ctx, domain.Product{Name: "Lamp"})
	badProduct := domain.ProductStatus("Whatever")
	if _, err := products.Update(ctx, p.ID, ProductPatch{Status: &badProduct}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation updating product status, got %v", err)
	}

	vendors := NewVendorService(newMockStore(), Options{})
	if _, err := vendors.Add(ctx, domain.Vendor{Name: "PaperCo", Status: "Banana"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown vendor status, got %v", err)
	}
	v, _ := vendors.Add(ctx, domain.Vendor{Name: "PaperCo"})
	badVendor := domain.VendorStatus("Banana")
	if _, err := vendors.Update(ctx, v.ID, VendorPatch{Status: &badVendor}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation updating vendor status, got %v", err)
	}
	if _, err := vendors.ByStatus(ctx, "Banana"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation filtering by unknown status, got %v", err)
	}
}
