package domain

import "time"

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "Scheduled"
	MeetingStatusLive      MeetingStatus = "Live"
	MeetingStatusEnded     MeetingStatus = "Ended"
)

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingStatusScheduled, MeetingStatusLive, MeetingStatusEnded:
		return true
	}
	return false
}

// Meeting only tracks room state; there is no media behind it.
type Meeting struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Host            string        `json:"host"`
	Participants    []string      `json:"participants"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	DurationMinutes int           `json:"durationMinutes"`
	Status          MeetingStatus `json:"status"`
	Recording       bool          `json:"recording"`
	ScreenSharing   bool          `json:"screenSharing"`
	StartedAt       *time.Time    `json:"startedAt,omitempty"`
	EndedAt         *time.Time    `json:"endedAt,omitempty"`
}

// HasParticipant reports whether name already joined.
func (m Meeting) HasParticipant(name string) bool {
	for _, p := range m.Participants {
		if p == name {
			return true
		}
	}
	return false
}
