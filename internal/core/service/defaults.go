package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
)

var sampleEpoch = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func defaultInventoryItems(threshold int) []domain.InventoryItem {
	items := []domain.InventoryItem{
		{ID: "1", Name: "Wireless Mouse", SKU: "WM-001", Category: "Electronics", Location: "Main Warehouse", Quantity: 150, UnitPrice: decimal.RequireFromString("24.99")},
		{ID: "2", Name: "USB-C Cable", SKU: "UC-002", Category: "Accessories", Location: "Main Warehouse", Quantity: 25, UnitPrice: decimal.RequireFromString("9.99")},
		{ID: "3", Name: "Mechanical Keyboard", SKU: "MK-003", Category: "Electronics", Location: "Downtown Store", Quantity: 0, UnitPrice: decimal.RequireFromString("89.00")},
		{ID: "4", Name: "Monitor Stand", SKU: "MS-004", Category: "Furniture", Location: "East Distribution", Quantity: 64, UnitPrice: decimal.RequireFromString("39.50")},
		{ID: "5", Name: "Laptop Sleeve", SKU: "LS-005", Category: "Accessories", Location: "Downtown Store", Quantity: 12, UnitPrice: decimal.RequireFromString("19.00")},
	}
	for i := range items {
		items[i].Status = domain.DeriveStockStatus(items[i].Quantity, items[i].Threshold(threshold))
		items[i].LastUpdated = sampleEpoch
	}
	return items
}

// defaultAlerts matches the sample items that are not in stock.
func defaultAlerts(threshold int) []domain.AlertItem {
	alerts := []domain.AlertItem{}
	for _, item := range defaultInventoryItems(threshold) {
		if item.Status == domain.StockStatusInStock {
			continue
		}
		a := alertFor(item)
		a.ID = "alert-" + item.ID
		a.CreatedAt = sampleEpoch
		alerts = append(alerts, a)
	}
	return alerts
}

func defaultLocations() []domain.Location {
	return []domain.Location{
		{ID: "1", Name: "Main Warehouse", Code: "main-warehouse", Type: domain.LocationTypeWarehouse, Address: "100 Industrial Way", Manager: "Dana Reyes", Capacity: 10000, Status: domain.LocationStatusActive},
		{ID: "2", Name: "Downtown Store", Code: "downtown-store", Type: domain.LocationTypeStore, Address: "12 Market Street", Manager: "Sam Okafor", Capacity: 1500, Status: domain.LocationStatusActive},
		{ID: "3", Name: "East Distribution", Code: "east-distribution", Type: domain.LocationTypeDistribution, Address: "8 Harbor Road", Manager: "Lee Park", Capacity: 6000, Status: domain.LocationStatusActive},
	}
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Wireless Mouse", SKU: "WM-001", Category: "Electronics", Description: "2.4GHz ergonomic mouse", Price: decimal.RequireFromString("24.99"), Cost: decimal.RequireFromString("11.20"), Vendor: "TechSupply Co", Status: domain.ProductStatusActive, CreatedAt: sampleEpoch},
		{ID: "2", Name: "USB-C Cable", SKU: "UC-002", Category: "Accessories", Description: "1m braided cable", Price: decimal.RequireFromString("9.99"), Cost: decimal.RequireFromString("2.10"), Vendor: "CableWorks", Status: domain.ProductStatusActive, CreatedAt: sampleEpoch},
		{ID: "3", Name: "Mechanical Keyboard", SKU: "MK-003", Category: "Electronics", Description: "Tenkeyless, brown switches", Price: decimal.RequireFromString("89.00"), Cost: decimal.RequireFromString("41.00"), Vendor: "TechSupply Co", Status: domain.ProductStatusActive, CreatedAt: sampleEpoch},
	}
}

func defaultTransfers() []domain.Transfer {
	return []domain.Transfer{
		{ID: "1", Product: "Wireless Mouse", Quantity: 20, FromLocation: "Main Warehouse", ToLocation: "Downtown Store", Status: domain.TransferStatusPending, RequestedBy: "Sam Okafor", CreatedAt: sampleEpoch, UpdatedAt: sampleEpoch},
		{ID: "2", Product: "Monitor Stand", Quantity: 10, FromLocation: "East Distribution", ToLocation: "Main Warehouse", Status: domain.TransferStatusCompleted, RequestedBy: "Dana Reyes", CreatedAt: sampleEpoch, UpdatedAt: sampleEpoch},
	}
}

func defaultAudits() []domain.Audit {
	audits := []domain.Audit{
		{ID: "1", Location: "Main Warehouse", Auditor: "Dana Reyes", ScheduledDate: sampleEpoch, Status: domain.AuditStatusCompleted, Lines: []domain.AuditLine{
			{Product: "Wireless Mouse", Expected: 150, Counted: 148, Checked: true},
			{Product: "USB-C Cable", Expected: 25, Counted: 25, Checked: true},
		}},
		{ID: "2", Location: "Downtown Store", Auditor: "Sam Okafor", ScheduledDate: sampleEpoch.AddDate(0, 1, 0), Status: domain.AuditStatusScheduled, Lines: []domain.AuditLine{}},
	}
	for i := range audits {
		audits[i].Recount()
	}
	return audits
}

func defaultVendors() []domain.Vendor {
	return []domain.Vendor{
		{ID: "1", Name: "TechSupply Co", ContactName: "Ari Blum", Email: "orders@techsupply.example", Phone: "555-0101", Category: "Electronics", Rating: 4.5, Status: domain.VendorStatusActive, ProductsSupplied: 2},
		{ID: "2", Name: "CableWorks", ContactName: "Mina Cho", Email: "sales@cableworks.example", Phone: "555-0142", Category: "Accessories", Rating: 3.8, Status: domain.VendorStatusActive, ProductsSupplied: 1},
	}
}

func defaultChatRooms() []domain.ChatRoom {
	return []domain.ChatRoom{
		{ID: "general", Name: "General", Participants: []string{"Dana Reyes", "Sam Okafor"}, Messages: []domain.ChatMessage{
			{ID: "1", Sender: "Dana Reyes", Content: "Audit for Main Warehouse is done.", Timestamp: sampleEpoch},
		}},
	}
}

func defaultMeetings() []domain.Meeting {
	return []domain.Meeting{
		{ID: "1", Title: "Weekly stock review", Host: "Dana Reyes", Participants: []string{"Dana Reyes"}, ScheduledAt: sampleEpoch, DurationMinutes: 30, Status: domain.MeetingStatusScheduled},
	}
}
