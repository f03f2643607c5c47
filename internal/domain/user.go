package domain

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	PasswordHash   string `json:"-"`
	FullName       string `json:"fullName"`
	Role           Role   `gorm:"index" json:"role"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`
	ProfilePicture string `json:"profilePicture,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TutorProfile is the public-facing tutor listing data, one per tutor user.
// New profiles start unapproved and stay out of public listings until an
// admin flips IsApproved.
type TutorProfile struct {
	ID         string   `gorm:"primaryKey" json:"id"`
	UserID     string   `gorm:"uniqueIndex" json:"userId"`
	Bio        string   `json:"bio"`
	Subjects   []string `gorm:"serializer:json" json:"subjects"`
	HourlyRate float64  `json:"hourlyRate"`
	Languages  []string `gorm:"serializer:json" json:"languages"`
	IsApproved bool     `gorm:"index" json:"isApproved"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
