package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cabana struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre             string    `gorm:"type:varchar(255);not null"`
	Descripcion        *string   `gorm:"type:text"`
	Ubicacion          string    `gorm:"type:varchar(255);not null"`
	LogoURL            *string   `gorm:"type:text"`
	RematesActivos     int       `gorm:"default:0"`
	AnimalesDestacados int       `gorm:"default:0"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Cabana) TableName() string {
	return "cabanas"
}
