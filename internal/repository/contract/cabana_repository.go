package contract

import (
	"context"

	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CabanaRepository interface {
	Create(ctx context.Context, cabana *entity.Cabana) error
	Update(ctx context.Context, cabana *entity.Cabana) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cabana, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cabana, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Counter maintenance when a remate flips estado.
	AdjustRematesActivos(ctx context.Context, id uuid.UUID, delta int) error
}
