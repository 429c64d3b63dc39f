package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=3"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type AssignRoleRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=admin moderator user"`
}
