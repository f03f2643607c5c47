package service

import "context"

// Routing keys published on the session topic exchange.
const (
	RKSessionRequested = "session.requested"
	RKSessionAccepted  = "session.accepted"
	RKSessionCancelled = "session.cancelled"
	RKSessionCompleted = "session.completed"
)

// EventPublisher is satisfied by pkg/mq.Publisher. A nil publisher disables
// eventing; publishing is best-effort and never blocks a request outcome.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// SessionEvent is the payload carried by every session.* routing key.
type SessionEvent struct {
	SessionID string `json:"session_id"`
	StudentID string `json:"student_id"`
	TutorID   string `json:"tutor_id"`
	Subject   string `json:"subject"`
	Start     int64  `json:"start"` // unix seconds
	End       int64  `json:"end"`
	Status    string `json:"status"`
}
