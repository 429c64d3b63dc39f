package mapper

import (
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/model"
)

type RemateMapper struct{}

func NewRemateMapper() *RemateMapper {
	return &RemateMapper{}
}

func (m *RemateMapper) ToEntity(r *model.Remate) *entity.Remate {
	if r == nil {
		return nil
	}
	return &entity.Remate{
		Id:          r.Id,
		CabanaId:    r.CabanaId,
		Titulo:      r.Titulo,
		Descripcion: r.Descripcion,
		Categoria:   entity.RemateCategoria(r.Categoria),
		Estado:      entity.RemateEstado(r.Estado),
		Fecha:       r.Fecha,
		Ubicacion:   r.Ubicacion,
		PrecioBase:  r.PrecioBase,
		ImagenURL:   r.ImagenURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *RemateMapper) ToModel(r *entity.Remate) *model.Remate {
	if r == nil {
		return nil
	}
	return &model.Remate{
		Id:          r.Id,
		CabanaId:    r.CabanaId,
		Titulo:      r.Titulo,
		Descripcion: r.Descripcion,
		Categoria:   string(r.Categoria),
		Estado:      string(r.Estado),
		Fecha:       r.Fecha,
		Ubicacion:   r.Ubicacion,
		PrecioBase:  r.PrecioBase,
		ImagenURL:   r.ImagenURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (m *RemateMapper) ToEntities(remates []*model.Remate) []*entity.Remate {
	entities := make([]*entity.Remate, len(remates))
	for i, r := range remates {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
