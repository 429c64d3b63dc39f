package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCabanaRequest struct {
	Nombre      string `json:"nombre" validate:"required,min=2"`
	Descripcion string `json:"descripcion"`
	Ubicacion   string `json:"ubicacion" validate:"required"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type CreateCabanaResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCabanaRequest struct {
	Id          uuid.UUID
	Nombre      string `json:"nombre" validate:"required,min=2"`
	Descripcion string `json:"descripcion"`
	Ubicacion   string `json:"ubicacion" validate:"required"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type CabanaResponse struct {
	Id                 uuid.UUID `json:"id"`
	UserId             uuid.UUID `json:"user_id"`
	Nombre             string    `json:"nombre"`
	Descripcion        string    `json:"descripcion,omitempty"`
	Ubicacion          string    `json:"ubicacion"`
	LogoURL            string    `json:"logo_url,omitempty"`
	RematesActivos     int       `json:"remates_activos"`
	AnimalesDestacados int       `json:"animales_destacados"`
	CreatedAt          time.Time `json:"created_at"`
}
