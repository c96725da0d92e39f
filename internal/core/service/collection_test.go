package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rl1809/invstrar/internal/core/domain"
)

func TestCollection_DefaultsNotWrittenOnRead(t *testing.T) {
	store := newMockStore()
	svc := NewLocationService(store, Options{SampleData: true})

	locations, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(locations) != len(defaultLocations()) {
		t.Errorf("expected %d sample locations, got %d", len(defaultLocations()), len(locations))
	}
	if _, found := store.raw(domain.KeyLocations); found {
		t.Error("expected read not to write defaults")
	}
}

func TestCollection_AddAppendsToDefaults(t *testing.T) {
	store := newMockStore()
	svc := NewLocationService(store, Options{SampleData: true})

	if _, err := svc.Add(context.Background(), domain.Location{Name: "North Depot"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	locations, _ := svc.List(context.Background())
	if len(locations) != len(defaultLocations())+1 {
		t.Errorf("expected defaults plus one, got %d", len(locations))
	}
}

func TestCollection_EmptyWithoutSampleData(t *testing.T) {
	svc := NewLocationService(newMockStore(), Options{})

	locations, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if locations == nil || len(locations) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", locations)
	}
}

func TestCollection_DeleteUnknownID(t *testing.T) {
	store := newMockStore()
	svc := NewVendorService(store, Options{})

	ok, err := svc.Delete(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ok {
		t.Error("expected false for unknown id")
	}
	if store.setCalls != 0 {
		t.Errorf("expected no write, got %d", store.setCalls)
	}
}

func TestCollection_UpdateUnknownID(t *testing.T) {
	svc := NewVendorService(newMockStore(), Options{})

	name := "Renamed"
	_, err := svc.Update(context.Background(), "does-not-exist", VendorPatch{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCollection_WriteFailureReturned(t *testing.T) {
	store := newMockStore()
	store.failSet = true
	svc := NewLocationService(store, Options{})

	_, err := svc.Add(context.Background(), domain.Location{Name: "North Depot"})
	if !errors.Is(err, errStoreUnavailable) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestCollection_CorruptValue(t *testing.T) {
	store := newMockStore()
	store.items[domain.KeyProducts] = "{not json"
	svc := NewProductService(store, Options{})

	if _, err := svc.List(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestMatches(t *testing.T) {
	if !matches("", "anything") {
		t.Error("expected empty query to match")
	}
	if !matches("  MOUSE ", "Wireless Mouse") {
		t.Error("expected case-insensitive substring match")
	}
	if matches("keyboard", "Wireless Mouse", "Electronics") {
		t.Error("expected no match")
	}
}
