package contract

import (
	"context"

	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoticiaRepository interface {
	Create(ctx context.Context, noticia *entity.Noticia) error
	Update(ctx context.Context, noticia *entity.Noticia) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Noticia, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Noticia, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
