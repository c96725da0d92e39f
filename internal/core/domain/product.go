package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "Active"
	ProductStatusDiscontinued ProductStatus = "Discontinued"
)

func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusDiscontinued
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Vendor      string          `json:"vendor"`
	Status      ProductStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Margin is price minus cost.
func (p Product) Margin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}
