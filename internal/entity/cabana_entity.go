package entity

import (
	"time"

	"github.com/google/uuid"
)

// Cabana is a breeding ranch in the association's directory, owned by the
// member that registered it.
type Cabana struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	Nombre              string
	Descripcion         *string
	Ubicacion           string
	LogoURL             *string
	RematesActivos      int
	AnimalesDestacados  int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
