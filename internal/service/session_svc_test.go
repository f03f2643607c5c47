package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

func newSessionSvc(t *testing.T) (*SessionSvc, *capturePublisher, *domain.User, *domain.User) {
	t.Helper()
	db := newTestDB(t)
	pub := &capturePublisher{}
	svc := NewSessionSvc(repository.NewSessionRepo(db), pub)
	student := seedUser(t, db, domain.RoleStudent)
	tutor := seedUser(t, db, domain.RoleTutor)
	return svc, pub, student, tutor
}

func at(hour int) time.Time {
	return time.Date(2030, time.March, 10, hour, 0, 0, 0, time.UTC)
}

func TestBookCreatesPendingSession(t *testing.T) {
	svc, pub, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, err := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if sess.Status != domain.SessionPending {
		t.Errorf("expected status PENDING, got %s", sess.Status)
	}
	if sess.ID == "" {
		t.Error("expected a generated session id")
	}
	if len(pub.keys) != 1 || pub.keys[0] != RKSessionRequested {
		t.Errorf("expected one %s event, got %v", RKSessionRequested, pub.keys)
	}
}

func TestBookTouchingIntervalsBothSucceed(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// [10:00,11:00) and [11:00,12:00) touch but do not overlap.
	if _, err := svc.Book(ctx, student.ID, tutor.ID, "geometry", at(11), 60); err != nil {
		t.Fatalf("touching booking should succeed, got %v", err)
	}
}

func TestBookOverlapRejected(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	// [10:30,11:30) overlaps [10:00,11:00).
	_, err := svc.Book(ctx, student.ID, tutor.ID, "geometry", at(10).Add(30*time.Minute), 60)
	if !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestBookIgnoresTerminalSessions(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	first, err := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.Transition(ctx, first.ID, tutor.ID, domain.SessionCanceled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The canceled session no longer occupies the window.
	if _, err := svc.Book(ctx, student.ID, tutor.ID, "geometry", at(10), 60); err != nil {
		t.Fatalf("booking over a canceled session should succeed, got %v", err)
	}
}

func TestBookInvalidRoles(t *testing.T) {
	svc, pub, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	// Target tutor is actually a student account.
	_, err := svc.Book(ctx, student.ID, student.ID, "algebra", at(10), 60)
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for non-tutor target, got %v", err)
	}

	// Requesting user is a tutor, not a student.
	_, err = svc.Book(ctx, tutor.ID, tutor.ID, "algebra", at(10), 60)
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for non-student requester, got %v", err)
	}

	// Unknown ids fail the same role resolution.
	_, err = svc.Book(ctx, "missing", tutor.ID, "algebra", at(10), 60)
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for unknown student, got %v", err)
	}

	if len(pub.keys) != 0 {
		t.Errorf("no events should be published on failure, got %v", pub.keys)
	}
}

func TestBookConcurrentSameSlot(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrSlotUnavailable):
		default:
			t.Errorf("unexpected error from concurrent booking: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one concurrent booking to win, got %d", successes)
	}
}

func TestTransitionLifecycle(t *testing.T) {
	svc, pub, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, err := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	accepted, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionAccepted)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.SessionAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}

	canceled, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionCanceled)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if canceled.Status != domain.SessionCanceled {
		t.Errorf("expected CANCELED, got %s", canceled.Status)
	}

	// CANCELED is terminal: nothing reopens it.
	_, err = svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionAccepted)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition out of CANCELED, got %v", err)
	}

	want := []string{RKSessionRequested, RKSessionAccepted, RKSessionCancelled}
	if len(pub.keys) != len(want) {
		t.Fatalf("expected events %v, got %v", want, pub.keys)
	}
	for i := range want {
		if pub.keys[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], pub.keys[i])
		}
	}
}

func TestTransitionRejectsPendingTarget(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, _ := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if _, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionPending)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition back to PENDING, got %v", err)
	}
}

func TestTransitionForbiddenForNonOwner(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, _ := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)

	_, err := svc.Transition(ctx, sess.ID, student.ID, domain.SessionAccepted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
}

func TestTransitionUnknownSession(t *testing.T) {
	svc, _, _, tutor := newSessionSvc(t)

	_, err := svc.Transition(context.Background(), "missing", tutor.ID, domain.SessionAccepted)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteTimeGate(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, _ := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if _, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	// Before the scheduled time the session cannot be completed.
	svc.now = func() time.Time { return at(9) }
	_, err := svc.Complete(ctx, sess.ID, tutor.ID)
	if !errors.Is(err, domain.ErrNotCompletable) {
		t.Fatalf("expected ErrNotCompletable before scheduledAt, got %v", err)
	}

	// At or after the scheduled time it can.
	svc.now = func() time.Time { return at(10) }
	done, err := svc.Complete(ctx, sess.ID, tutor.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != domain.SessionCompleted {
		t.Errorf("expected COMPLETED, got %s", done.Status)
	}
}

func TestCompleteRequiresAccepted(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, _ := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	svc.now = func() time.Time { return at(12) }

	_, err := svc.Complete(ctx, sess.ID, tutor.ID)
	if !errors.Is(err, domain.ErrNotCompletable) {
		t.Fatalf("expected ErrNotCompletable for PENDING session, got %v", err)
	}
}

func TestTransitionToCompletedDelegates(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	sess, _ := svc.Book(ctx, student.ID, tutor.ID, "algebra", at(10), 60)
	if _, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}
	svc.now = func() time.Time { return at(11) }

	done, err := svc.Transition(ctx, sess.ID, tutor.ID, domain.SessionCompleted)
	if err != nil {
		t.Fatalf("transition to COMPLETED: %v", err)
	}
	if done.Status != domain.SessionCompleted {
		t.Errorf("expected COMPLETED, got %s", done.Status)
	}
}

func TestListingsOrderedBySchedule(t *testing.T) {
	svc, _, student, tutor := newSessionSvc(t)
	ctx := context.Background()

	if _, err := svc.Book(ctx, student.ID, tutor.ID, "late", at(14), 60); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.Book(ctx, student.ID, tutor.ID, "early", at(9), 30); err != nil {
		t.Fatalf("book: %v", err)
	}

	forTutor, err := svc.ForTutor(ctx, tutor.ID)
	if err != nil {
		t.Fatalf("for tutor: %v", err)
	}
	if len(forTutor) != 2 || forTutor[0].Subject != "early" {
		t.Errorf("expected sessions ordered by scheduledAt, got %+v", forTutor)
	}

	forStudent, err := svc.ForStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("for student: %v", err)
	}
	if len(forStudent) != 2 || forStudent[0].Subject != "early" {
		t.Errorf("expected sessions ordered by scheduledAt, got %+v", forStudent)
	}
}
