package domain

import "time"

// Role categorizes an account and determines its fixed permission set.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGM    Role = "gm"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Email        string
	Username     string
	FullName     string
	AvatarURL    string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfileUpdate carries the optional fields of a partial profile update.
// Nil fields are left untouched.
type UserProfileUpdate struct {
	Username  *string
	FullName  *string
	AvatarURL *string
}
