package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Remate struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabanaId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Titulo      string    `gorm:"type:varchar(255);not null"`
	Descripcion *string   `gorm:"type:text"`
	Categoria   string    `gorm:"type:varchar(50);not null;index"`
	Estado      string    `gorm:"type:varchar(50);not null;default:'proximo';index"`
	Fecha       time.Time `gorm:"not null;index"`
	Ubicacion   string    `gorm:"type:varchar(255);not null"`
	PrecioBase  *float64  `gorm:"type:numeric"`
	ImagenURL   *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Remate) TableName() string {
	return "remates"
}
