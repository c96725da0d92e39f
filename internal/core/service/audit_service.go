package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

// AuditPatch holds the fields to change; nil fields are left as they are.
// Lines replaces the expected lines, keeping counts already recorded for
// products that stay listed.
type AuditPatch struct {
	Location      *string
	Auditor       *string
	ScheduledDate *time.Time
	Lines         *[]domain.AuditLine
	Notes         *string
}

type AuditService struct {
	audits *collection[domain.Audit]
}

func NewAuditService(store port.KeyValueStore, opts Options) *AuditService {
	return &AuditService{
		audits: newCollection(store, domain.KeyAudits, func(a domain.Audit) string { return a.ID }, defaultAudits, opts),
	}
}

func (s *AuditService) List(ctx context.Context) ([]domain.Audit, error) {
	return s.audits.list(ctx)
}

func (s *AuditService) Get(ctx context.Context, id string) (domain.Audit, error) {
	return s.audits.find(ctx, id)
}

func (s *AuditService) Search(ctx context.Context, query string) ([]domain.Audit, error) {
	return s.audits.filter(ctx, func(a domain.Audit) bool {
		return matches(query, a.Location, a.Auditor, string(a.Status), a.Notes)
	})
}

// Schedule creates an audit. Lines carry the expected counts.
func (s *AuditService) Schedule(ctx context.Context, a domain.Audit) (domain.Audit, error) {
	if strings.TrimSpace(a.Location) == "" || strings.TrimSpace(a.Auditor) == "" {
		return domain.Audit{}, fmt.Errorf("audit location and auditor are required: %w", ErrValidation)
	}

	a.ID = uuid.New().String()
	a.Status = domain.AuditStatusScheduled
	if a.Lines == nil {
		a.Lines = []domain.AuditLine{}
	}
	a.Recount()

	if err := s.audits.add(ctx, a); err != nil {
		return domain.Audit{}, err
	}
	return a, nil
}

// Update edits an audit that is not completed and recounts it.
func (s *AuditService) Update(ctx context.Context, id string, patch AuditPatch) (domain.Audit, error) {
	return s.audits.update(ctx, id, func(a *domain.Audit) error {
		if a.Status == domain.AuditStatusCompleted {
			return fmt.Errorf("audit %s is completed: %w", a.ID, ErrInvalidTransition)
		}
		if patch.Location != nil {
			location := strings.TrimSpace(*patch.Location)
			if location == "" {
				return fmt.Errorf("audit location is required: %w", ErrValidation)
			}
			a.Location = location
		}
		if patch.Auditor != nil {
			auditor := strings.TrimSpace(*patch.Auditor)
			if auditor == "" {
				return fmt.Errorf("audit auditor is required: %w", ErrValidation)
			}
			a.Auditor = auditor
		}
		if patch.ScheduledDate != nil {
			a.ScheduledDate = *patch.ScheduledDate
		}
		if patch.Notes != nil {
			a.Notes = *patch.Notes
		}
		if patch.Lines != nil {
			lines := make([]domain.AuditLine, 0, len(*patch.Lines))
			for _, l := range *patch.Lines {
				if strings.TrimSpace(l.Product) == "" || l.Expected < 0 {
					return fmt.Errorf("audit lines need a product and a non-negative expected count: %w", ErrValidation)
				}
				next := domain.AuditLine{Product: l.Product, Expected: l.Expected}
				for _, prev := range a.Lines {
					if prev.Checked && strings.EqualFold(prev.Product, l.Product) {
						next.Counted, next.Checked = prev.Counted, true
						break
					}
				}
				lines = append(lines, next)
			}
			a.Lines = lines
		}
		a.Recount()
		return nil
	})
}

func (s *AuditService) Start(ctx context.Context, id string) (domain.Audit, error) {
	return s.audits.update(ctx, id, func(a *domain.Audit) error {
		if a.Status != domain.AuditStatusScheduled {
			return fmt.Errorf("audit %s is %s: %w", a.ID, a.Status, ErrInvalidTransition)
		}
		a.Status = domain.AuditStatusInProgress
		return nil
	})
}

// RecordCount sets the counted quantity for product, adding a line with no
// expected quantity when the product was not listed. Counting a scheduled
// audit starts it.
func (s *AuditService) RecordCount(ctx context.Context, id, product string, counted int) (domain.Audit, error) {
	if strings.TrimSpace(product) == "" || counted < 0 {
		return domain.Audit{}, fmt.Errorf("audit count needs a product and a non-negative count: %w", ErrValidation)
	}

	return s.audits.update(ctx, id, func(a *domain.Audit) error {
		if a.Status == domain.AuditStatusCompleted {
			return fmt.Errorf("audit %s is completed: %w", a.ID, ErrInvalidTransition)
		}
		a.Status = domain.AuditStatusInProgress

		found := false
		for i := range a.Lines {
			if strings.EqualFold(a.Lines[i].Product, product) {
				a.Lines[i].Counted = counted
				a.Lines[i].Checked = true
				found = true
				break
			}
		}
		if !found {
			a.Lines = append(a.Lines, domain.AuditLine{Product: product, Counted: counted, Checked: true})
		}
		a.Recount()
		return nil
	})
}

func (s *AuditService) Complete(ctx context.Context, id, notes string) (domain.Audit, error) {
	return s.audits.update(ctx, id, func(a *domain.Audit) error {
		if a.Status == domain.AuditStatusCompleted {
			return fmt.Errorf("audit %s is already completed: %w", a.ID, ErrInvalidTransition)
		}
		a.Status = domain.AuditStatusCompleted
		if notes != "" {
			a.Notes = notes
		}
		a.Recount()
		return nil
	})
}

func (s *AuditService) Delete(ctx context.Context, id string) (bool, error) {
	return s.audits.remove(ctx, id)
}
