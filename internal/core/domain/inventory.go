package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the quantity at or below which an item is Low Stock.
const DefaultLowStockThreshold = 30

type StockStatus string

const (
	StockStatusInStock    StockStatus = "In Stock"
	StockStatusLowStock   StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

func (s StockStatus) Valid() bool {
	switch s {
	case StockStatusInStock, StockStatusLowStock, StockStatusOutOfStock:
		return true
	}
	return false
}

type InventoryItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Location     string          `json:"location"`
	Quantity     int             `json:"quantity"`
	ReorderPoint int             `json:"reorderPoint,omitempty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Status       StockStatus     `json:"status"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// DeriveStockStatus classifies a quantity against threshold.
// A non-positive threshold falls back to DefaultLowStockThreshold.
func DeriveStockStatus(quantity, threshold int) StockStatus {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= threshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// Threshold returns the item's reorder point, or fallback when unset.
func (i InventoryItem) Threshold(fallback int) int {
	if i.ReorderPoint > 0 {
		return i.ReorderPoint
	}
	return fallback
}

// Value is quantity times unit price.
func (i InventoryItem) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
