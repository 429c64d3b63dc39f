package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppRole string
type UserStatus string

const (
	RoleAdmin     AppRole = "admin"
	RoleModerator AppRole = "moderator"
	RoleUser      AppRole = "user"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User is a member of the association. Profile fields (Nombre, AvatarURL)
// live on the same row, matching the portal's profiles table.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	Nombre       string
	Status       UserStatus
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleAssignment mirrors the portal's user_roles table: a user can hold
// several app roles at once.
type RoleAssignment struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      AppRole
	CreatedAt time.Time
}

type PasswordResetToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	IpAddress string
	UserAgent string
}
