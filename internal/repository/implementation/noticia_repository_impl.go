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

type NoticiaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoticiaMapper
}

func NewNoticiaRepository(db *gorm.DB) contract.NoticiaRepository {
	return &NoticiaRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoticiaMapper(),
	}
}

func (r *NoticiaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoticiaRepositoryImpl) Create(ctx context.Context, noticia *entity.Noticia) error {
	modelNoticia := r.mapper.ToModel(noticia)
	if err := r.db.WithContext(ctx).Create(modelNoticia).Error; err != nil {
		return err
	}
	*noticia = *r.mapper.ToEntity(modelNoticia)
	return nil
}

func (r *NoticiaRepositoryImpl) Update(ctx context.Context, noticia *entity.Noticia) error {
	modelNoticia := r.mapper.ToModel(noticia)
	if err := r.db.WithContext(ctx).Save(modelNoticia).Error; err != nil {
		return err
	}
	*noticia = *r.mapper.ToEntity(modelNoticia)
	return nil
}

func (r *NoticiaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Noticia{}).Error
}

func (r *NoticiaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Noticia, error) {
	var modelNoticia model.Noticia
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelNoticia).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelNoticia), nil
}

func (r *NoticiaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Noticia, error) {
	var modelNoticias []*model.Noticia
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelNoticias).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelNoticias), nil
}

func (r *NoticiaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Noticia{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
