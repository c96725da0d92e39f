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

type MeetingPatch struct {
	Title           *string
	Host            *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	Participants    *[]string
}

// MeetingService tracks meeting room state only. Recording and screen share
// are flags; nothing is captured or streamed.
type MeetingService struct {
	meetings *collection[domain.Meeting]
}

func NewMeetingService(store port.KeyValueStore, opts Options) *MeetingService {
	return &MeetingService{
		meetings: newCollection(store, domain.KeyMeetings, func(m domain.Meeting) string { return m.ID }, defaultMeetings, opts),
	}
}

func (s *MeetingService) List(ctx context.Context) ([]domain.Meeting, error) {
	return s.meetings.list(ctx)
}

func (s *MeetingService) Get(ctx context.Context, id string) (domain.Meeting, error) {
	return s.meetings.find(ctx, id)
}

func (s *MeetingService) Search(ctx context.Context, query string) ([]domain.Meeting, error) {
	return s.meetings.filter(ctx, func(m domain.Meeting) bool {
		return matches(query, append([]string{m.Title, m.Host, string(m.Status)}, m.Participants...)...)
	})
}

func (s *MeetingService) Schedule(ctx context.Context, m domain.Meeting) (domain.Meeting, error) {
	if strings.TrimSpace(m.Title) == "" || strings.TrimSpace(m.Host) == "" {
		return domain.Meeting{}, fmt.Errorf("meeting title and host are required: %w", ErrValidation)
	}
	if m.DurationMinutes < 0 {
		return domain.Meeting{}, fmt.Errorf("meeting duration cannot be negative: %w", ErrValidation)
	}

	m.ID = uuid.New().String()
	m.Status = domain.MeetingStatusScheduled
	m.Recording = false
	m.ScreenSharing = false
	if m.ScheduledAt.IsZero() {
		m.ScheduledAt = time.Now().UTC()
	}
	if !m.HasParticipant(m.Host) {
		m.Participants = append([]string{m.Host}, m.Participants...)
	}

	if err := s.meetings.add(ctx, m); err != nil {
		return domain.Meeting{}, err
	}
	return m, nil
}

// Update edits a meeting that has not ended. The host always stays a
// participant.
func (s *MeetingService) Update(ctx context.Context, id string, patch MeetingPatch) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status == domain.MeetingStatusEnded {
			return fmt.Errorf("meeting %s has ended: %w", m.ID, ErrInvalidTransition)
		}
		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return fmt.Errorf("meeting title is required: %w", ErrValidation)
			}
			m.Title = title
		}
		if patch.Host != nil {
			host := strings.TrimSpace(*patch.Host)
			if host == "" {
				return fmt.Errorf("meeting host is required: %w", ErrValidation)
			}
			m.Host = host
		}
		if patch.DurationMinutes != nil {
			if *patch.DurationMinutes < 0 {
				return fmt.Errorf("meeting duration cannot be negative: %w", ErrValidation)
			}
			m.DurationMinutes = *patch.DurationMinutes
		}
		if patch.ScheduledAt != nil {
			m.ScheduledAt = *patch.ScheduledAt
		}
		if patch.Participants != nil {
			m.Participants = append([]string{}, *patch.Participants...)
		}
		if !m.HasParticipant(m.Host) {
			m.Participants = append([]string{m.Host}, m.Participants...)
		}
		return nil
	})
}

func (s *MeetingService) Join(ctx context.Context, id, participant string) (domain.Meeting, error) {
	if strings.TrimSpace(participant) == "" {
		return domain.Meeting{}, fmt.Errorf("participant name is required: %w", ErrValidation)
	}
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status == domain.MeetingStatusEnded {
			return fmt.Errorf("meeting %s has ended: %w", m.ID, ErrInvalidTransition)
		}
		if !m.HasParticipant(participant) {
			m.Participants = append(m.Participants, participant)
		}
		return nil
	})
}

func (s *MeetingService) Leave(ctx context.Context, id, participant string) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		kept := make([]string, 0, len(m.Participants))
		for _, p := range m.Participants {
			if p != participant {
				kept = append(kept, p)
			}
		}
		m.Participants = kept
		return nil
	})
}

func (s *MeetingService) Start(ctx context.Context, id string) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status != domain.MeetingStatusScheduled {
			return fmt.Errorf("meeting %s is %s: %w", m.ID, m.Status, ErrInvalidTransition)
		}
		now := time.Now().UTC()
		m.Status = domain.MeetingStatusLive
		m.StartedAt = &now
		return nil
	})
}

// End stops a live meeting and turns recording and screen share off.
func (s *MeetingService) End(ctx context.Context, id string) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status != domain.MeetingStatusLive {
			return fmt.Errorf("meeting %s is %s: %w", m.ID, m.Status, ErrInvalidTransition)
		}
		now := time.Now().UTC()
		m.Status = domain.MeetingStatusEnded
		m.EndedAt = &now
		m.Recording = false
		m.ScreenSharing = false
		return nil
	})
}

func (s *MeetingService) ToggleRecording(ctx context.Context, id string) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status != domain.MeetingStatusLive {
			return fmt.Errorf("meeting %s is not live: %w", m.ID, ErrInvalidTransition)
		}
		m.Recording = !m.Recording
		return nil
	})
}

func (s *MeetingService) ToggleScreenShare(ctx context.Context, id string) (domain.Meeting, error) {
	return s.meetings.update(ctx, id, func(m *domain.Meeting) error {
		if m.Status != domain.MeetingStatusLive {
			return fmt.Errorf("meeting %s is not live: %w", m.ID, ErrInvalidTransition)
		}
		m.ScreenSharing = !m.ScreenSharing
		return nil
	})
}

func (s *MeetingService) Delete(ctx context.Context, id string) (bool, error) {
	return s.meetings.remove(ctx, id)
}
