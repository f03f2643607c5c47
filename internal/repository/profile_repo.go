package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mo-shab/tutor/internal/domain"
)

type ProfileRepo struct{ db *gorm.DB }

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Upsert creates the tutor's profile or replaces its editable fields, keyed
// by user id. Approval status is intentionally not touched here.
func (r *ProfileRepo) Upsert(ctx context.Context, p *domain.TutorProfile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"bio", "subjects", "hourly_rate", "languages", "updated_at"}),
	}).Create(p).Error
}

func (r *ProfileRepo) ByUserID(ctx context.Context, userID string) (*domain.TutorProfile, error) {
	var p domain.TutorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *ProfileRepo) ByID(ctx context.Context, id string) (*domain.TutorProfile, error) {
	var p domain.TutorProfile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *ProfileRepo) Pending(ctx context.Context) ([]domain.TutorProfile, error) {
	var out []domain.TutorProfile
	err := r.db.WithContext(ctx).Where("is_approved = ?", false).Find(&out).Error
	return out, err
}

func (r *ProfileRepo) Approved(ctx context.Context) ([]domain.TutorProfile, error) {
	var out []domain.TutorProfile
	err := r.db.WithContext(ctx).Where("is_approved = ?", true).Find(&out).Error
	return out, err
}

func (r *ProfileRepo) SetApproval(ctx context.Context, id string, approved bool) (*domain.TutorProfile, error) {
	res := r.db.WithContext(ctx).Model(&domain.TutorProfile{}).
		Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.ByID(ctx, id)
}
