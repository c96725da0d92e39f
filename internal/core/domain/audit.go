package domain

import "time"

type AuditStatus string

const (
	AuditStatusScheduled  AuditStatus = "Scheduled"
	AuditStatusInProgress AuditStatus = "In Progress"
	AuditStatusCompleted  AuditStatus = "Completed"
)

// Valid reports whether s is a known audit status.
func (s AuditStatus) Valid() bool {
	switch s {
	case AuditStatusScheduled, AuditStatusInProgress, AuditStatusCompleted:
		return true
	}
	return false
}

// AuditLine is one product of an audit. Checked is false until a count is
// recorded for it.
type AuditLine struct {
	Product  string `json:"product"`
	Expected int    `json:"expected"`
	Counted  int    `json:"counted"`
	Checked  bool   `json:"checked"`
}

// Variance is counted minus expected, zero while the line is unchecked.
func (l AuditLine) Variance() int {
	if !l.Checked {
		return 0
	}
	return l.Counted - l.Expected
}

type Audit struct {
	ID            string      `json:"id"`
	Location      string      `json:"location"`
	Auditor       string      `json:"auditor"`
	ScheduledDate time.Time   `json:"scheduledDate"`
	Status        AuditStatus `json:"status"`
	Lines         []AuditLine `json:"lines"`
	ItemsCounted  int         `json:"itemsCounted"`
	Discrepancies int         `json:"discrepancies"`
	Notes         string      `json:"notes,omitempty"`
}

// Recount refreshes ItemsCounted and Discrepancies from the checked lines.
func (a *Audit) Recount() {
	a.ItemsCounted = 0
	a.Discrepancies = 0
	for _, l := range a.Lines {
		if !l.Checked {
			continue
		}
		a.ItemsCounted += l.Counted
		if l.Variance() != 0 {
			a.Discrepancies++
		}
	}
}
