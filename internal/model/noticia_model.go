package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Noticia struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo           string    `gorm:"type:varchar(255);not null"`
	Contenido        string    `gorm:"type:text;not null"`
	Autor            string    `gorm:"type:varchar(255);not null"`
	Categoria        string    `gorm:"type:varchar(50);not null;index"`
	ImagenURL        *string   `gorm:"type:text"`
	FechaPublicacion time.Time `gorm:"not null;index"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Noticia) TableName() string {
	return "noticias"
}
