package specification

import (
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ByEstado struct {
	Estado string
}

func (s ByEstado) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("estado = ?", s.Estado)
}

type ByCabana struct {
	CabanaId uuid.UUID
}

func (s ByCabana) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cabana_id = ?", s.CabanaId)
}

// FechaDesde keeps remates on or after the given instant (upcoming listings).
type FechaDesde struct {
	Desde time.Time
}

func (s FechaDesde) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("fecha >= ?", s.Desde)
}
