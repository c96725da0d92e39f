package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/port"
)

type LocationService struct {
	locations *collection[domain.Location]
}

type LocationPatch struct {
	Name     *string
	Code     *string
	Type     *domain.LocationType
	Address  *string
	Manager  *string
	Capacity *int
	Status   *domain.LocationStatus
}

func NewLocationService(store port.KeyValueStore, opts Options) *LocationService {
	return &LocationService{
		locations: newCollection(store, domain.KeyLocations, func(l domain.Location) string { return l.ID }, defaultLocations, opts),
	}
}

func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	return s.locations.list(ctx)
}

func (s *LocationService) Get(ctx context.Context, id string) (domain.Location, error) {
	return s.locations.find(ctx, id)
}

func (s *LocationService) Search(ctx context.Context, query string) ([]domain.Location, error) {
	return s.locations.filter(ctx, func(l domain.Location) bool {
		return matches(query, l.Name, l.Code, string(l.Type), l.Address, l.Manager)
	})
}

func (s *LocationService) Add(ctx context.Context, loc domain.Location) (domain.Location, error) {
	loc.Name = strings.TrimSpace(loc.Name)
	if loc.Name == "" {
		return domain.Location{}, fmt.Errorf("location name is required: %w", ErrValidation)
	}
	if loc.Capacity < 0 {
		return domain.Location{}, fmt.Errorf("capacity cannot be negative: %w", ErrValidation)
	}

	loc.ID = uuid.New().String()
	if loc.Code == "" {
		loc.Code = slug.Make(loc.Name)
	}
	if loc.Type == "" {
		loc.Type = domain.LocationTypeWarehouse
	}
	if loc.Status == "" {
		loc.Status = domain.LocationStatusActive
	}
	if err := validateLocationEnums(loc.Type, loc.Status); err != nil {
		return domain.Location{}, err
	}

	if err := s.locations.add(ctx, loc); err != nil {
		return domain.Location{}, err
	}
	return loc, nil
}

func (s *LocationService) Update(ctx context.Context, id string, patch LocationPatch) (domain.Location, error) {
	return s.locations.update(ctx, id, func(l *domain.Location) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("location name is required: %w", ErrValidation)
			}
			l.Name = name
		}
		if patch.Capacity != nil {
			if *patch.Capacity < 0 {
				return fmt.Errorf("capacity cannot be negative: %w", ErrValidation)
			}
			l.Capacity = *patch.Capacity
		}
		if patch.Code != nil {
			l.Code = *patch.Code
		}
		if patch.Type != nil {
			if err := validateLocationEnums(*patch.Type, l.Status); err != nil {
				return err
			}
			l.Type = *patch.Type
		}
		if patch.Address != nil {
			l.Address = *patch.Address
		}
		if patch.Manager != nil {
			l.Manager = *patch.Manager
		}
		if patch.Status != nil {
			if err := validateLocationEnums(l.Type, *patch.Status); err != nil {
				return err
			}
			l.Status = *patch.Status
		}
		return nil
	})
}

func (s *LocationService) Delete(ctx context.Context, id string) (bool, error) {
	return s.locations.remove(ctx, id)
}

func validateLocationEnums(t domain.LocationType, status domain.LocationStatus) error {
	if !t.Valid() {
		return fmt.Errorf("unknown location type %q: %w", t, ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown location status %q: %w", status, ErrValidation)
	}
	return nil
}
