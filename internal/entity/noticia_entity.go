package entity

import (
	"time"

	"github.com/google/uuid"
)

// Noticia is one article in the association's news feed.
type Noticia struct {
	Id               uuid.UUID
	Titulo           string
	Contenido        string
	Autor            string
	Categoria        string
	ImagenURL        *string
	FechaPublicacion time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
