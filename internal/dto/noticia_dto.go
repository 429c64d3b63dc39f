package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoticiaRequest struct {
	Titulo    string `json:"titulo" validate:"required,min=3"`
	Contenido string `json:"contenido" validate:"required"`
	Autor     string `json:"autor" validate:"required"`
	Categoria string `json:"categoria" validate:"required"`
	ImagenURL string `json:"imagen_url" validate:"omitempty,url"`
}

type CreateNoticiaResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNoticiaRequest struct {
	Id        uuid.UUID
	Titulo    string `json:"titulo" validate:"required,min=3"`
	Contenido string `json:"contenido" validate:"required"`
	Autor     string `json:"autor" validate:"required"`
	Categoria string `json:"categoria" validate:"required"`
	ImagenURL string `json:"imagen_url" validate:"omitempty,url"`
}

type NoticiaResponse struct {
	Id               uuid.UUID `json:"id"`
	Titulo           string    `json:"titulo"`
	Contenido        string    `json:"contenido"`
	Autor            string    `json:"autor"`
	Categoria        string    `json:"categoria"`
	ImagenURL        string    `json:"imagen_url,omitempty"`
	FechaPublicacion time.Time `json:"fecha_publicacion"`
	CreatedAt        time.Time `json:"created_at"`
}
