package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

type ProfileSvc struct {
	users    *repository.UserRepo
	profiles *repository.ProfileRepo
	reviews  *repository.ReviewRepo
}

func NewProfileSvc(users *repository.UserRepo, profiles *repository.ProfileRepo, reviews *repository.ReviewRepo) *ProfileSvc {
	return &ProfileSvc{users: users, profiles: profiles, reviews: reviews}
}

type ProfileInput struct {
	Bio        string
	Subjects   []string
	HourlyRate float64
	Languages  []string
}

// Upsert creates or updates the caller's tutor profile. Only tutors have one.
func (s *ProfileSvc) Upsert(ctx context.Context, userID string, in ProfileInput) (*domain.TutorProfile, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleTutor {
		return nil, fmt.Errorf("user is not a tutor: %w", domain.ErrInvalidRole)
	}
	p := &domain.TutorProfile{
		UserID:     userID,
		Bio:        in.Bio,
		Subjects:   in.Subjects,
		HourlyRate: in.HourlyRate,
		Languages:  in.Languages,
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return s.profiles.ByUserID(ctx, userID)
}

func (s *ProfileSvc) MyProfile(ctx context.Context, userID string) (*domain.TutorProfile, error) {
	return s.profiles.ByUserID(ctx, userID)
}

// PublicTutor is one row of the public tutor listing.
type PublicTutor struct {
	ID             string               `json:"id"`
	FullName       string               `json:"fullName"`
	ProfilePicture string               `json:"profilePicture,omitempty"`
	Profile        *domain.TutorProfile `json:"profile"`
}

// PublicTutorDetail adds the tutor's reviews and aggregate rating.
type PublicTutorDetail struct {
	PublicTutor
	Reviews     []domain.Review    `json:"reviews"`
	ReviewStats domain.ReviewStats `json:"reviewStats"`
}

// ListApproved returns every tutor whose profile passed moderation.
func (s *ProfileSvc) ListApproved(ctx context.Context) ([]PublicTutor, error) {
	profiles, err := s.profiles.Approved(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PublicTutor, 0, len(profiles))
	for i := range profiles {
		p := profiles[i]
		u, err := s.users.ByID(ctx, p.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, PublicTutor{ID: u.ID, FullName: u.FullName, ProfilePicture: u.ProfilePicture, Profile: &p})
	}
	return out, nil
}

// PublicByUserID returns one approved tutor with reviews and rating stats.
func (s *ProfileSvc) PublicByUserID(ctx context.Context, userID string) (*PublicTutorDetail, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleTutor {
		return nil, domain.ErrNotFound
	}
	p, err := s.profiles.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !p.IsApproved {
		return nil, domain.ErrNotFound
	}

	reviews, err := s.reviews.ForTutor(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := domain.ReviewStats{Count: len(reviews)}
	if stats.Count > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		avg := float64(sum) / float64(stats.Count)
		stats.Average = math.Round(avg*10) / 10
	}

	return &PublicTutorDetail{
		PublicTutor: PublicTutor{ID: u.ID, FullName: u.FullName, ProfilePicture: u.ProfilePicture, Profile: p},
		Reviews:     reviews,
		ReviewStats: stats,
	}, nil
}
