package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mo-shab/tutor/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(rv).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyReviewed
	}
	return err
}

func (r *ReviewRepo) BySessionID(ctx context.Context, sessionID string) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&rv).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &rv, nil
}

func (r *ReviewRepo) ForTutor(ctx context.Context, tutorID string) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).Where("tutor_id = ?", tutorID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}
