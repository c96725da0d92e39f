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

// TransferService does not check product or location names against their
// collections; transfers carry them as plain strings.
type TransferService struct {
	transfers *collection[domain.Transfer]
}

type TransferPatch struct {
	Product      *string
	Quantity     *int
	FromLocation *string
	ToLocation   *string
	RequestedBy  *string
	Notes        *string
}

func NewTransferService(store port.KeyValueStore, opts Options) *TransferService {
	return &TransferService{
		transfers: newCollection(store, domain.KeyTransfers, func(t domain.Transfer) string { return t.ID }, defaultTransfers, opts),
	}
}

func (s *TransferService) List(ctx context.Context) ([]domain.Transfer, error) {
	return s.transfers.list(ctx)
}

func (s *TransferService) Get(ctx context.Context, id string) (domain.Transfer, error) {
	return s.transfers.find(ctx, id)
}

func (s *TransferService) Search(ctx context.Context, query string) ([]domain.Transfer, error) {
	return s.transfers.filter(ctx, func(t domain.Transfer) bool {
		return matches(query, t.Product, t.FromLocation, t.ToLocation, string(t.Status), t.RequestedBy)
	})
}

func (s *TransferService) ByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.Transfer, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown transfer status %q: %w", status, ErrValidation)
	}
	return s.transfers.filter(ctx, func(t domain.Transfer) bool { return t.Status == status })
}

func (s *TransferService) Add(ctx context.Context, t domain.Transfer) (domain.Transfer, error) {
	if err := validateTransfer(t); err != nil {
		return domain.Transfer{}, err
	}

	now := time.Now().UTC()
	t.ID = uuid.New().String()
	t.Status = domain.TransferStatusPending
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.transfers.add(ctx, t); err != nil {
		return domain.Transfer{}, err
	}
	return t, nil
}

// Update edits a transfer that has not left yet.
func (s *TransferService) Update(ctx context.Context, id string, patch TransferPatch) (domain.Transfer, error) {
	return s.transfers.update(ctx, id, func(t *domain.Transfer) error {
		if t.Status != domain.TransferStatusPending {
			return fmt.Errorf("transfer %s is %s: %w", t.ID, t.Status, ErrInvalidTransition)
		}

		next := *t
		if patch.Product != nil {
			next.Product = *patch.Product
		}
		if patch.Quantity != nil {
			next.Quantity = *patch.Quantity
		}
		if patch.FromLocation != nil {
			next.FromLocation = *patch.FromLocation
		}
		if patch.ToLocation != nil {
			next.ToLocation = *patch.ToLocation
		}
		if patch.RequestedBy != nil {
			next.RequestedBy = *patch.RequestedBy
		}
		if patch.Notes != nil {
			next.Notes = *patch.Notes
		}
		if err := validateTransfer(next); err != nil {
			return err
		}

		next.UpdatedAt = time.Now().UTC()
		*t = next
		return nil
	})
}

func (s *TransferService) UpdateStatus(ctx context.Context, id string, status domain.TransferStatus) (domain.Transfer, error) {
	if !status.Valid() {
		return domain.Transfer{}, fmt.Errorf("unknown transfer status %q: %w", status, ErrValidation)
	}
	return s.transfers.update(ctx, id, func(t *domain.Transfer) error {
		if !t.Status.CanTransition(status) {
			return fmt.Errorf("transfer %s %s -> %s: %w", t.ID, t.Status, status, ErrInvalidTransition)
		}
		t.Status = status
		t.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *TransferService) Delete(ctx context.Context, id string) (bool, error) {
	return s.transfers.remove(ctx, id)
}

func validateTransfer(t domain.Transfer) error {
	switch {
	case strings.TrimSpace(t.Product) == "":
		return fmt.Errorf("transfer product is required: %w", ErrValidation)
	case t.Quantity <= 0:
		return fmt.Errorf("transfer quantity must be positive: %w", ErrValidation)
	case strings.TrimSpace(t.FromLocation) == "" || strings.TrimSpace(t.ToLocation) == "":
		return fmt.Errorf("transfer locations are required: %w", ErrValidation)
	case strings.EqualFold(t.FromLocation, t.ToLocation):
		return fmt.Errorf("transfer source and destination must differ: %w", ErrValidation)
	}
	return nil
}
