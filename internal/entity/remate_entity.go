package entity

import (
	"time"

	"github.com/google/uuid"
)

type RemateCategoria string
type RemateEstado string

const (
	CategoriaToros    RemateCategoria = "Toros"
	CategoriaVientres RemateCategoria = "Vientres"
	CategoriaTerneros RemateCategoria = "Terneros"

	EstadoProximo    RemateEstado = "proximo"
	EstadoActivo     RemateEstado = "activo"
	EstadoFinalizado RemateEstado = "finalizado"
)

// Remate is one auction event, always attached to the cabaña that consigns
// the animals.
type Remate struct {
	Id          uuid.UUID
	CabanaId    uuid.UUID
	Titulo      string
	Descripcion *string
	Categoria   RemateCategoria
	Estado      RemateEstado
	Fecha       time.Time
	Ubicacion   string
	PrecioBase  *float64
	ImagenURL   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
