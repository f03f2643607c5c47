package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

// SessionSvc owns the booking admission and the status state machine.
type SessionSvc struct {
	repo *repository.SessionRepo
	pub  EventPublisher
	now  func() time.Time
}

func NewSessionSvc(r *repository.SessionRepo, pub EventPublisher) *SessionSvc {
	return &SessionSvc{repo: r, pub: pub, now: time.Now}
}

// allowed transitions out of each status. Terminal states have no entry:
// nothing reopens CANCELED or COMPLETED.
var transitions = map[domain.SessionStatus][]domain.SessionStatus{
	domain.SessionPending:  {domain.SessionAccepted, domain.SessionCanceled},
	domain.SessionAccepted: {domain.SessionCanceled, domain.SessionCompleted},
}

func transitionAllowed(from, to domain.SessionStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Book admits a new session request for the tutor's time window. The
// read-check-write happens atomically in the repository; on success the
// session is PENDING and a session.requested event goes out.
func (s *SessionSvc) Book(ctx context.Context, studentID, tutorID, subject string, scheduledAt time.Time, durationMinutes int) (*domain.Session, error) {
	sess := &domain.Session{
		StudentID:       studentID,
		TutorID:         tutorID,
		Subject:         subject,
		ScheduledAt:     scheduledAt.UTC(),
		DurationMinutes: durationMinutes,
	}
	if err := s.repo.CreateIfFree(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(ctx, RKSessionRequested, sess)
	return sess, nil
}

// Transition moves a session along the state machine on behalf of its tutor.
// A COMPLETED target carries the extra time constraint and is delegated to
// Complete.
func (s *SessionSvc) Transition(ctx context.Context, sessionID, actingTutorID string, to domain.SessionStatus) (*domain.Session, error) {
	if !to.Valid() || to == domain.SessionPending {
		return nil, fmt.Errorf("cannot transition to %s: %w", to, domain.ErrInvalidTransition)
	}
	if to == domain.SessionCompleted {
		return s.Complete(ctx, sessionID, actingTutorID)
	}

	sess, err := s.owned(ctx, sessionID, actingTutorID)
	if err != nil {
		return nil, err
	}
	if !transitionAllowed(sess.Status, to) {
		return nil, fmt.Errorf("%s -> %s: %w", sess.Status, to, domain.ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateStatus(ctx, sessionID, to)
	if err != nil {
		return nil, err
	}
	switch to {
	case domain.SessionAccepted:
		s.publish(ctx, RKSessionAccepted, updated)
	case domain.SessionCanceled:
		s.publish(ctx, RKSessionCancelled, updated)
	}
	return updated, nil
}

// Complete marks an ACCEPTED session COMPLETED, but only once its scheduled
// time has passed.
func (s *SessionSvc) Complete(ctx context.Context, sessionID, actingTutorID string) (*domain.Session, error) {
	sess, err := s.owned(ctx, sessionID, actingTutorID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionAccepted {
		return nil, fmt.Errorf("only accepted sessions can be completed: %w", domain.ErrNotCompletable)
	}
	if sess.ScheduledAt.After(s.now()) {
		return nil, fmt.Errorf("session has not started yet: %w", domain.ErrNotCompletable)
	}

	updated, err := s.repo.UpdateStatus(ctx, sessionID, domain.SessionCompleted)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, RKSessionCompleted, updated)
	return updated, nil
}

func (s *SessionSvc) ForTutor(ctx context.Context, tutorID string) ([]domain.Session, error) {
	return s.repo.ForTutor(ctx, tutorID)
}

func (s *SessionSvc) ForStudent(ctx context.Context, studentID string) ([]domain.Session, error) {
	return s.repo.ForStudent(ctx, studentID)
}

// owned loads the session and re-verifies the acting tutor owns it.
func (s *SessionSvc) owned(ctx context.Context, sessionID, actingTutorID string) (*domain.Session, error) {
	sess, err := s.repo.ByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.TutorID != actingTutorID {
		return nil, domain.ErrForbidden
	}
	return sess, nil
}

func (s *SessionSvc) publish(ctx context.Context, key string, sess *domain.Session) {
	if s.pub == nil {
		return
	}
	start, end := sess.Interval()
	_ = s.pub.PublishJSON(ctx, key, SessionEvent{
		SessionID: sess.ID,
		StudentID: sess.StudentID,
		TutorID:   sess.TutorID,
		Subject:   sess.Subject,
		Start:     start.Unix(),
		End:       end.Unix(),
		Status:    string(sess.Status),
	})
}
