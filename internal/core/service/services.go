package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

// Services bundles one accessor per collection over a shared store.
type Services struct {
	Inventory *InventoryService
	Alerts    *AlertService
	Locations *LocationService
	Products  *ProductService
	Transfers *TransferService
	Audits    *AuditService
	Vendors   *VendorService
	Chat      *ChatService
	Meetings  *MeetingService
	Backup    *BackupService
	Dashboard *DashboardService
}

// NewServices wires every service. archive may be nil.
func NewServices(store port.KeyValueStore, archive port.BackupArchive, opts Options, archiveQueueSize int) *Services {
	alerts := NewAlertService(store, opts)
	s := &Services{
		Inventory: NewInventoryService(store, alerts, opts),
		Alerts:    alerts,
		Locations: NewLocationService(store, opts),
		Products:  NewProductService(store, opts),
		Transfers: NewTransferService(store, opts),
		Audits:    NewAuditService(store, opts),
		Vendors:   NewVendorService(store, opts),
		Chat:      NewChatService(store, opts),
		Meetings:  NewMeetingService(store, opts),
		Backup:    NewBackupService(store, archive, archiveQueueSize),
	}
	s.Dashboard = NewDashboardService(s, archive)
	return s
}

// Snapshot is every collection read at one point.
type Snapshot struct {
	Inventory []domain.InventoryItem
	Locations []domain.Location
	Products  []domain.Product
	Transfers []domain.Transfer
	Audits    []domain.Audit
	Vendors   []domain.Vendor
}

func (s *Services) Snapshot(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Inventory, err = s.Inventory.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Locations, err = s.Locations.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Products, err = s.Products.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Transfers, err = s.Transfers.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Audits, err = s.Audits.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Vendors, err = s.Vendors.List(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// SnapshotFromBackup decodes the collections held in b. Missing keys are empty.
func SnapshotFromBackup(b domain.Backup) (Snapshot, error) {
	var snap Snapshot
	targets := map[string]any{
		domain.KeyInventoryItems: &snap.Inventory,
		domain.KeyLocations:      &snap.Locations,
		domain.KeyProducts:       &snap.Products,
		domain.KeyTransfers:      &snap.Transfers,
		domain.KeyAudits:         &snap.Audits,
		domain.KeyVendors:        &snap.Vendors,
	}
	for key, target := range targets {
		raw, ok := b.Data[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return Snapshot{}, fmt.Errorf("decode backup %s: %w", key, err)
		}
	}
	return snap, nil
}
