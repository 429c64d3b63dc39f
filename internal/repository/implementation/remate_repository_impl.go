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

type RemateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RemateMapper
}

func NewRemateRepository(db *gorm.DB) contract.RemateRepository {
	return &RemateRepositoryImpl{
		db:     db,
		mapper: mapper.NewRemateMapper(),
	}
}

func (r *RemateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RemateRepositoryImpl) Create(ctx context.Context, remate *entity.Remate) error {
	modelRemate := r.mapper.ToModel(remate)
	if err := r.db.WithContext(ctx).Create(modelRemate).Error; err != nil {
		return err
	}
	*remate = *r.mapper.ToEntity(modelRemate)
	return nil
}

func (r *RemateRepositoryImpl) Update(ctx context.Context, remate *entity.Remate) error {
	modelRemate := r.mapper.ToModel(remate)
	if err := r.db.WithContext(ctx).Save(modelRemate).Error; err != nil {
		return err
	}
	*remate = *r.mapper.ToEntity(modelRemate)
	return nil
}

func (r *RemateRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Remate{}).Error
}

func (r *RemateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Remate, error) {
	var modelRemate model.Remate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelRemate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelRemate), nil
}

func (r *RemateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Remate, error) {
	var modelRemates []*model.Remate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelRemates).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelRemates), nil
}

func (r *RemateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Remate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RemateRepositoryImpl) UpdateEstado(ctx context.Context, id uuid.UUID, estado entity.RemateEstado) error {
	return r.db.WithContext(ctx).Model(&model.Remate{}).
		Where("id = ?", id).
		Update("estado", string(estado)).Error
}
