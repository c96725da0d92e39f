package service

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
)

type ValueLine struct {
	Name  string          `json:"name"`
	Items int             `json:"items"`
	Units int             `json:"units"`
	Value decimal.Decimal `json:"value"`
}

type Report struct {
	GeneratedAt        time.Time                     `json:"generatedAt"`
	StockStatus        map[domain.StockStatus]int    `json:"stockStatus"`
	ValueByCategory    []ValueLine                   `json:"valueByCategory"`
	ValueByLocation    []ValueLine                   `json:"valueByLocation"`
	TotalValue         decimal.Decimal               `json:"totalValue"`
	TransfersByStatus  map[domain.TransferStatus]int `json:"transfersByStatus"`
	CompletedAudits    int                           `json:"completedAudits"`
	AuditDiscrepancies int                           `json:"auditDiscrepancies"`
	Reorder            []domain.InventoryItem        `json:"reorder"`
}

// BuildReport aggregates snap. Negative quantities contribute no value.
func BuildReport(snap Snapshot) Report {
	r := Report{
		GeneratedAt: time.Now().UTC(),
		StockStatus: map[domain.StockStatus]int{
			domain.StockStatusInStock:    0,
			domain.StockStatusLowStock:   0,
			domain.StockStatusOutOfStock: 0,
		},
		TotalValue:        decimal.Zero,
		TransfersByStatus: map[domain.TransferStatus]int{},
		Reorder:           []domain.InventoryItem{},
	}

	byCategory := map[string]*ValueLine{}
	byLocation := map[string]*ValueLine{}
	for _, item := range snap.Inventory {
		r.StockStatus[item.Status]++

		units := max(item.Quantity, 0)
		value := item.UnitPrice.Mul(decimal.NewFromInt(int64(units)))
		r.TotalValue = r.TotalValue.Add(value)
		accumulate(byCategory, orUnassigned(item.Category), units, value)
		accumulate(byLocation, orUnassigned(item.Location), units, value)

		if item.Status != domain.StockStatusInStock {
			r.Reorder = append(r.Reorder, item)
		}
	}
	r.ValueByCategory = sortedLines(byCategory)
	r.ValueByLocation = sortedLines(byLocation)
	sort.SliceStable(r.Reorder, func(i, j int) bool {
		return r.Reorder[i].Quantity < r.Reorder[j].Quantity
	})

	for _, t := range snap.Transfers {
		r.TransfersByStatus[t.Status]++
	}
	for _, a := range snap.Audits {
		if a.Status == domain.AuditStatusCompleted {
			r.CompletedAudits++
			r.AuditDiscrepancies += a.Discrepancies
		}
	}
	return r
}

func accumulate(lines map[string]*ValueLine, name string, units int, value decimal.Decimal) {
	line, ok := lines[name]
	if !ok {
		line = &ValueLine{Name: name, Value: decimal.Zero}
		lines[name] = line
	}
	line.Items++
	line.Units += units
	line.Value = line.Value.Add(value)
}

func sortedLines(lines map[string]*ValueLine) []ValueLine {
	out := make([]ValueLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Value.Cmp(out[j].Value); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func orUnassigned(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unassigned"
	}
	return s
}
