package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

type Trend struct {
	Change    float64        `json:"change"`
	Direction TrendDirection `json:"direction"`
}

// ComputeTrend returns the percentage change from prev to cur, rounded to one
// decimal. A zero baseline counts as +100% when cur is positive.
func ComputeTrend(prev, cur float64) Trend {
	var change float64
	switch {
	case prev == 0 && cur > 0:
		change = 100
	case prev == 0:
		change = 0
	default:
		change = (cur - prev) / math.Abs(prev) * 100
	}
	change = math.Round(change*10) / 10

	dir := TrendFlat
	if change > 0 {
		dir = TrendUp
	} else if change < 0 {
		dir = TrendDown
	}
	return Trend{Change: change, Direction: dir}
}

type DashboardStats struct {
	TotalItems       int             `json:"totalItems"`
	TotalUnits       int             `json:"totalUnits"`
	LowStock         int             `json:"lowStock"`
	OutOfStock       int             `json:"outOfStock"`
	Locations        int             `json:"locations"`
	PendingTransfers int             `json:"pendingTransfers"`
	OpenAudits       int             `json:"openAudits"`
	ActiveVendors    int             `json:"activeVendors"`
	InventoryValue   decimal.Decimal `json:"inventoryValue"`
}

func BuildStats(snap Snapshot) DashboardStats {
	stats := DashboardStats{
		TotalItems:     len(snap.Inventory),
		Locations:      len(snap.Locations),
		InventoryValue: decimal.Zero,
	}
	for _, item := range snap.Inventory {
		if item.Quantity > 0 {
			stats.TotalUnits += item.Quantity
		}
		switch item.Status {
		case domain.StockStatusLowStock:
			stats.LowStock++
		case domain.StockStatusOutOfStock:
			stats.OutOfStock++
		}
		if item.Quantity > 0 {
			stats.InventoryValue = stats.InventoryValue.Add(item.Value())
		}
	}
	for _, t := range snap.Transfers {
		if t.Status == domain.TransferStatusPending || t.Status == domain.TransferStatusInTransit {
			stats.PendingTransfers++
		}
	}
	for _, a := range snap.Audits {
		if a.Status != domain.AuditStatusCompleted {
			stats.OpenAudits++
		}
	}
	for _, v := range snap.Vendors {
		if v.Status == domain.VendorStatusActive {
			stats.ActiveVendors++
		}
	}
	return stats
}

// Dashboard is the current stats plus trends against a baseline, when one exists.
type Dashboard struct {
	Stats      DashboardStats   `json:"stats"`
	BaselineAt *time.Time       `json:"baselineAt,omitempty"`
	Trends     map[string]Trend `json:"trends,omitempty"`
}

func BuildDashboard(current Snapshot, baseline *Snapshot) Dashboard {
	d := Dashboard{Stats: BuildStats(current)}
	if baseline == nil {
		return d
	}

	prev := BuildStats(*baseline)
	cur := d.Stats
	prevValue, _ := prev.InventoryValue.Float64()
	curValue, _ := cur.InventoryValue.Float64()
	d.Trends = map[string]Trend{
		"totalItems":       ComputeTrend(float64(prev.TotalItems), float64(cur.TotalItems)),
		"totalUnits":       ComputeTrend(float64(prev.TotalUnits), float64(cur.TotalUnits)),
		"lowStock":         ComputeTrend(float64(prev.LowStock), float64(cur.LowStock)),
		"outOfStock":       ComputeTrend(float64(prev.OutOfStock), float64(cur.OutOfStock)),
		"pendingTransfers": ComputeTrend(float64(prev.PendingTransfers), float64(cur.PendingTransfers)),
		"inventoryValue":   ComputeTrend(prevValue, curValue),
	}
	return d
}

type DashboardService struct {
	services *Services
	archive  port.BackupArchive
}

func NewDashboardService(services *Services, archive port.BackupArchive) *DashboardService {
	return &DashboardService{services: services, archive: archive}
}

// Dashboard uses the latest archived backup as the trend baseline. An
// unreachable archive only drops the trends.
func (s *DashboardService) Dashboard(ctx context.Context) (Dashboard, error) {
	current, err := s.services.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	if s.archive == nil {
		return BuildDashboard(current, nil), nil
	}

	latest, err := s.archive.LatestBackup(ctx)
	if err != nil {
		log.Printf("dashboard: failed to load baseline: %v", err)
		return BuildDashboard(current, nil), nil
	}
	if latest == nil {
		return BuildDashboard(current, nil), nil
	}

	baseline, err := SnapshotFromBackup(latest.Backup)
	if err != nil {
		log.Printf("dashboard: ignoring baseline %s: %v", latest.ID, err)
		return BuildDashboard(current, nil), nil
	}

	d := BuildDashboard(current, &baseline)
	at := latest.Backup.Timestamp
	d.BaselineAt = &at
	return d, nil
}
