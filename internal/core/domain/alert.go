package domain

import "time"

type AlertKind string

const (
	AlertKindLowStock   AlertKind = "low_stock"
	AlertKindOutOfStock AlertKind = "out_of_stock"
)

type AlertSeverity string

const (
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type AlertItem struct {
	ID        string        `json:"id"`
	ItemID    string        `json:"itemId"`
	ItemName  string        `json:"itemName"`
	Kind      AlertKind     `json:"kind"`
	Message   string        `json:"message"`
	Severity  AlertSeverity `json:"severity"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"createdAt"`
}
