package specification

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

type ById struct {
	Id uuid.UUID
}

func (s ById) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.Id)
}

type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByCategoria filters rows with a categoria column (remates, noticias).
type ByCategoria struct {
	Categoria string
}

func (s ByCategoria) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("categoria = ?", s.Categoria)
}

type Paginate struct {
	Limit  int
	Offset int
}

func (s Paginate) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	return db.Offset(s.Offset)
}

type OrderBy struct {
	Expr string
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(s.Expr)
}
