package domain

import "time"

// Review is created by the student of a completed session, one per session,
// immutable once written. TutorID is denormalized from the session for
// per-tutor queries.
type Review struct {
	ID        string `gorm:"primaryKey" json:"id"`
	SessionID string `gorm:"uniqueIndex" json:"sessionId"`
	StudentID string `gorm:"index" json:"studentId"`
	TutorID   string `gorm:"index" json:"tutorId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type ReviewStats struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
