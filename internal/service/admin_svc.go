package service

import (
	"context"
	"fmt"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/repository"
)

type AdminSvc struct {
	users    *repository.UserRepo
	profiles *repository.ProfileRepo
	notifier Notifier
}

func NewAdminSvc(users *repository.UserRepo, profiles *repository.ProfileRepo, n Notifier) *AdminSvc {
	if n == nil {
		n = NopNotifier{}
	}
	return &AdminSvc{users: users, profiles: profiles, notifier: n}
}

func (s *AdminSvc) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// SetUserRole changes a user's role and force-logs them out so stale token
// claims cannot linger on an open client. The push is fire-and-forget.
func (s *AdminSvc) SetUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrInvalidRole)
	}
	u, err := s.users.UpdateFields(ctx, userID, map[string]any{"role": role})
	if err != nil {
		return nil, err
	}
	s.notifier.ForceLogout(userID)
	return u, nil
}

// SetUserActive bans or unbans an account. Deactivation pushes forceLogout to
// a connected client; reactivation does not.
func (s *AdminSvc) SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	u, err := s.users.UpdateFields(ctx, userID, map[string]any{"is_active": active})
	if err != nil {
		return nil, err
	}
	if !active {
		s.notifier.ForceLogout(userID)
	}
	return u, nil
}

func (s *AdminSvc) PendingTutorProfiles(ctx context.Context) ([]domain.TutorProfile, error) {
	return s.profiles.Pending(ctx)
}

func (s *AdminSvc) SetTutorApproval(ctx context.Context, profileID string, approved bool) (*domain.TutorProfile, error) {
	return s.profiles.SetApproval(ctx, profileID, approved)
}
