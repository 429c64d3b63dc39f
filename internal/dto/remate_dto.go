package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRemateRequest struct {
	CabanaId    uuid.UUID `json:"cabana_id" validate:"required"`
	Titulo      string    `json:"titulo" validate:"required,min=3"`
	Descripcion string    `json:"descripcion"`
	Categoria   string    `json:"categoria" validate:"required,oneof=Toros Vientres Terneros"`
	Fecha       time.Time `json:"fecha" validate:"required"`
	Ubicacion   string    `json:"ubicacion" validate:"required"`
	PrecioBase  *float64  `json:"precio_base" validate:"omitempty,gt=0"`
	ImagenURL   string    `json:"imagen_url" validate:"omitempty,url"`
}

type CreateRemateResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateRemateRequest struct {
	Id          uuid.UUID
	Titulo      string    `json:"titulo" validate:"required,min=3"`
	Descripcion string    `json:"descripcion"`
	Categoria   string    `json:"categoria" validate:"required,oneof=Toros Vientres Terneros"`
	Fecha       time.Time `json:"fecha" validate:"required"`
	Ubicacion   string    `json:"ubicacion" validate:"required"`
	PrecioBase  *float64  `json:"precio_base" validate:"omitempty,gt=0"`
	ImagenURL   string    `json:"imagen_url" validate:"omitempty,url"`
}

type UpdateRemateEstadoRequest struct {
	Id     uuid.UUID
	Estado string `json:"estado" validate:"required,oneof=proximo activo finalizado"`
}

type RemateResponse struct {
	Id          uuid.UUID `json:"id"`
	CabanaId    uuid.UUID `json:"cabana_id"`
	Titulo      string    `json:"titulo"`
	Descripcion string    `json:"descripcion,omitempty"`
	Categoria   string    `json:"categoria"`
	Estado      string    `json:"estado"`
	Fecha       time.Time `json:"fecha"`
	Ubicacion   string    `json:"ubicacion"`
	PrecioBase  *float64  `json:"precio_base,omitempty"`
	ImagenURL   string    `json:"imagen_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListRematesQuery struct {
	Categoria string `query:"categoria" validate:"omitempty,oneof=Toros Vientres Terneros"`
	Estado    string `query:"estado" validate:"omitempty,oneof=proximo activo finalizado"`
	CabanaId  string `query:"cabana_id" validate:"omitempty,uuid"`
	// Proximos keeps only remates whose fecha is still ahead.
	Proximos bool `query:"proximos"`
	Page     int  `query:"page"`
	Limit    int  `query:"limit"`
}

type ListRematesResponse struct {
	Items []RemateResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
