package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mo-shab/tutor/internal/domain"
)

type SessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// CreateIfFree admits a booking request only if the tutor's requested window
// is free, and persists it in the same transaction. The read-check-write runs
// at serializable isolation so two concurrent overlapping requests cannot
// both commit; a serialization abort is reported as ErrSlotUnavailable.
func (r *SessionRepo) CreateIfFree(ctx context.Context, s *domain.Session) error {
	start, end := s.Interval()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student domain.User
		err := tx.Where("id = ? AND role = ?", s.StudentID, domain.RoleStudent).First(&student).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("requesting user is not a valid student: %w", domain.ErrInvalidRole)
		}
		if err != nil {
			return err
		}

		var tutor domain.User
		err = tx.Where("id = ? AND role = ?", s.TutorID, domain.RoleTutor).First(&tutor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("selected user is not a valid tutor: %w", domain.ErrInvalidRole)
		}
		if err != nil {
			return err
		}

		// Terminal-state sessions cannot conflict, so only active ones are
		// candidates. The half-open overlap test lives on the domain type.
		var candidates []domain.Session
		err = tx.Where("tutor_id = ? AND status IN ?", s.TutorID,
			[]domain.SessionStatus{domain.SessionPending, domain.SessionAccepted}).
			Find(&candidates).Error
		if err != nil {
			return err
		}
		for i := range candidates {
			if candidates[i].Overlaps(start, end) {
				return domain.ErrSlotUnavailable
			}
		}

		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.Status = domain.SessionPending
		return tx.Create(s).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil && isSerializationFailure(err) {
		return domain.ErrSlotUnavailable
	}
	return err
}

// isSerializationFailure detects a Postgres serialization hazard abort
// (SQLSTATE 40001) or deadlock (40P01). Callers treat both as a lost race
// for the slot.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func (r *SessionRepo) ByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &s, nil
}

func (r *SessionRepo) ForTutor(ctx context.Context, tutorID string) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).Where("tutor_id = ?", tutorID).
		Order("scheduled_at ASC").Find(&out).Error
	return out, err
}

func (r *SessionRepo) ForStudent(ctx context.Context, studentID string) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).
		Order("scheduled_at ASC").Find(&out).Error
	return out, err
}

func (r *SessionRepo) UpdateStatus(ctx context.Context, id string, to domain.SessionStatus) (*domain.Session, error) {
	res := r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).Update("status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.ByID(ctx, id)
}
