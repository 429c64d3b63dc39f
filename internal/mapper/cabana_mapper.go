package mapper

import (
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/model"
)

type CabanaMapper struct{}

func NewCabanaMapper() *CabanaMapper {
	return &CabanaMapper{}
}

func (m *CabanaMapper) ToEntity(c *model.Cabana) *entity.Cabana {
	if c == nil {
		return nil
	}
	return &entity.Cabana{
		Id:                 c.Id,
		UserId:             c.UserId,
		Nombre:             c.Nombre,
		Descripcion:        c.Descripcion,
		Ubicacion:          c.Ubicacion,
		LogoURL:            c.LogoURL,
		RematesActivos:     c.RematesActivos,
		AnimalesDestacados: c.AnimalesDestacados,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (m *CabanaMapper) ToModel(c *entity.Cabana) *model.Cabana {
	if c == nil {
		return nil
	}
	return &model.Cabana{
		Id:                 c.Id,
		UserId:             c.UserId,
		Nombre:             c.Nombre,
		Descripcion:        c.Descripcion,
		Ubicacion:          c.Ubicacion,
		LogoURL:            c.LogoURL,
		RematesActivos:     c.RematesActivos,
		AnimalesDestacados: c.AnimalesDestacados,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (m *CabanaMapper) ToEntities(cabanas []*model.Cabana) []*entity.Cabana {
	entities := make([]*entity.Cabana, len(cabanas))
	for i, c := range cabanas {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
