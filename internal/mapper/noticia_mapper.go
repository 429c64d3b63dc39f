package mapper

import (
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/model"
)

type NoticiaMapper struct{}

func NewNoticiaMapper() *NoticiaMapper {
	return &NoticiaMapper{}
}

func (m *NoticiaMapper) ToEntity(n *model.Noticia) *entity.Noticia {
	if n == nil {
		return nil
	}
	return &entity.Noticia{
		Id:               n.Id,
		Titulo:           n.Titulo,
		Contenido:        n.Contenido,
		Autor:            n.Autor,
		Categoria:        n.Categoria,
		ImagenURL:        n.ImagenURL,
		FechaPublicacion: n.FechaPublicacion,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

func (m *NoticiaMapper) ToModel(n *entity.Noticia) *model.Noticia {
	if n == nil {
		return nil
	}
	return &model.Noticia{
		Id:               n.Id,
		Titulo:           n.Titulo,
		Contenido:        n.Contenido,
		Autor:            n.Autor,
		Categoria:        n.Categoria,
		ImagenURL:        n.ImagenURL,
		FechaPublicacion: n.FechaPublicacion,
		CreatedAt:        n.CreatedAt,
		UpdatedAt:        n.UpdatedAt,
	}
}

func (m *NoticiaMapper) ToEntities(noticias []*model.Noticia) []*entity.Noticia {
	entities := make([]*entity.Noticia, len(noticias))
	for i, n := range noticias {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
