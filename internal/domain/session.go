package domain

import "time"

type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionAccepted  SessionStatus = "ACCEPTED"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCanceled  SessionStatus = "CANCELED"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionPending, SessionAccepted, SessionCompleted, SessionCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCanceled
}

// Session is one tutoring engagement request between a student and a tutor.
// Sessions are never deleted, only transitioned.
type Session struct {
	ID              string        `gorm:"primaryKey" json:"id"`
	StudentID       string        `gorm:"index" json:"studentId"`
	TutorID         string        `gorm:"index" json:"tutorId"`
	Subject         string        `json:"subject"`
	ScheduledAt     time.Time     `gorm:"index" json:"scheduledAt"`
	DurationMinutes int           `json:"duration"`
	Status          SessionStatus `gorm:"index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Interval returns the half-open occupancy window [start, end).
func (s *Session) Interval() (start, end time.Time) {
	start = s.ScheduledAt
	end = start.Add(time.Duration(s.DurationMinutes) * time.Minute)
	return start, end
}

// Overlaps tests strict half-open overlap with [start, end): touching
// intervals (end == other start) do not conflict.
func (s *Session) Overlaps(start, end time.Time) bool {
	cStart, cEnd := s.Interval()
	return start.Before(cEnd) && end.After(cStart)
}

// Active sessions are the only ones that can occupy a tutor's time.
func (s *Session) Active() bool {
	return s.Status == SessionPending || s.Status == SessionAccepted
}
