package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

type ReviewSvc struct {
	reviews  *repository.ReviewRepo
	sessions *repository.SessionRepo
}

func NewReviewSvc(reviews *repository.ReviewRepo, sessions *repository.SessionRepo) *ReviewSvc {
	return &ReviewSvc{reviews: reviews, sessions: sessions}
}

// Create writes the student's review of a completed session. The tutor id is
// taken from the session row, never from the caller.
func (s *ReviewSvc) Create(ctx context.Context, studentID, sessionID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrNotReviewable)
	}

	sess, err := s.sessions.ByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != studentID {
		return nil, domain.ErrForbidden
	}
	if sess.Status != domain.SessionCompleted {
		return nil, fmt.Errorf("only completed sessions can be reviewed: %w", domain.ErrNotReviewable)
	}
	if _, err := s.reviews.BySessionID(ctx, sessionID); err == nil {
		return nil, domain.ErrAlreadyReviewed
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rv := &domain.Review{
		SessionID: sessionID,
		StudentID: studentID,
		TutorID:   sess.TutorID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewSvc) ForTutor(ctx context.Context, tutorID string) ([]domain.Review, error) {
	return s.reviews.ForTutor(ctx, tutorID)
}
