package repository

import (
	"gorm.io/gorm"

	"github.com/mo-shab/tutor/internal/domain"
)

// Migrate creates or updates the schema for every model in one place so the
// server binary has a single call site.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.TutorProfile{},
		&domain.Session{},
		&domain.Review{},
		&domain.Conversation{},
		&domain.Message{},
	)
}
