package implementation

import (
	"context"
	"errors"

	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/mapper"
	"angus-connect-be/internal/model"
	"angus-connect-be/internal/repository/contract"
	"angus-connect-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CabanaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CabanaMapper
}

func NewCabanaRepository(db *gorm.DB) contract.CabanaRepository {
	return &CabanaRepositoryImpl{
		db:     db,
		mapper: mapper.NewCabanaMapper(),
	}
}

func (r *CabanaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CabanaRepositoryImpl) Create(ctx context.Context, cabana *entity.Cabana) error {
	modelCabana := r.mapper.ToModel(cabana)
	if err := r.db.WithContext(ctx).Create(modelCabana).Error; err != nil {
		return err
	}
	*cabana = *r.mapper.ToEntity(modelCabana)
	return nil
}

func (r *CabanaRepositoryImpl) Update(ctx context.Context, cabana *entity.Cabana) error {
	modelCabana := r.mapper.ToModel(cabana)
	if err := r.db.WithContext(ctx).Save(modelCabana).Error; err != nil {
		return err
	}
	*cabana = *r.mapper.ToEntity(modelCabana)
	return nil
}

func (r *CabanaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Cabana{}).Error
}

func (r *CabanaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Cabana, error) {
	var modelCabana model.Cabana
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelCabana).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelCabana), nil
}

func (r *CabanaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Cabana, error) {
	var modelCabanas []*model.Cabana
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelCabanas).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelCabanas), nil
}

func (r *CabanaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Cabana{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CabanaRepositoryImpl) AdjustRematesActivos(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Cabana{}).
		Where("id = ?", id).
		Update("remates_activos", gorm.Expr("GREATEST(remates_activos + ?, 0)", delta)).Error
}
