package domain

import "time"

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "Pending"
	TransferStatusInTransit TransferStatus = "In Transit"
	TransferStatusCompleted TransferStatus = "Completed"
	TransferStatusCancelled TransferStatus = "Cancelled"
)

// Valid reports whether s is one of the four transfer statuses.
func (s TransferStatus) Valid() bool {
	switch s {
	case TransferStatusPending, TransferStatusInTransit, TransferStatusCompleted, TransferStatusCancelled:
		return true
	}
	return false
}

var transferTransitions = map[TransferStatus][]TransferStatus{
	TransferStatusPending:   {TransferStatusInTransit, TransferStatusCancelled},
	TransferStatusInTransit: {TransferStatusCompleted, TransferStatusCancelled},
}

// CanTransition reports whether a transfer may move from s to next.
func (s TransferStatus) CanTransition(next TransferStatus) bool {
	for _, allowed := range transferTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transfer references product and locations by name only.
type Transfer struct {
	ID           string         `json:"id"`
	Product      string         `json:"product"`
	Quantity     int            `json:"quantity"`
	FromLocation string         `json:"fromLocation"`
	ToLocation   string         `json:"toLocation"`
	Status       TransferStatus `json:"status"`
	RequestedBy  string         `json:"requestedBy"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}
