package contract

import (
	"context"

	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RemateRepository interface {
	Create(ctx context.Context, remate *entity.Remate) error
	Update(ctx context.Context, remate *entity.Remate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Remate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Remate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	UpdateEstado(ctx context.Context, id uuid.UUID, estado entity.RemateEstado) error
}
