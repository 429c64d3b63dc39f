package service

import (
	"context"
	"errors"
	"time"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"
	"angus-connect-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrCabanaNotFound = errors.New("cabana not found")

type ICabanaService interface {
	GetAll(ctx context.Context) ([]*dto.CabanaResponse, error)
	GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.CabanaResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.CabanaResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCabanaRequest) (*dto.CreateCabanaResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCabanaRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type cabanaService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCabanaService(uowFactory unitofwork.RepositoryFactory) ICabanaService {
	return &cabanaService{
		uowFactory: uowFactory,
	}
}

func toCabanaResponse(cabana *entity.Cabana) *dto.CabanaResponse {
	descripcion := ""
	if cabana.Descripcion != nil {
		descripcion = *cabana.Descripcion
	}
	logoURL := ""
	if cabana.LogoURL != nil {
		logoURL = *cabana.LogoURL
	}

	return &dto.CabanaResponse{
		Id:                 cabana.Id,
		UserId:             cabana.UserId,
		Nombre:             cabana.Nombre,
		Descripcion:        descripcion,
		Ubicacion:          cabana.Ubicacion,
		LogoURL:            logoURL,
		RematesActivos:     cabana.RematesActivos,
		AnimalesDestacados: cabana.AnimalesDestacados,
		CreatedAt:          cabana.CreatedAt,
	}
}

func (s *cabanaService) GetAll(ctx context.Context) ([]*dto.CabanaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabanas, err := uow.CabanaRepository().FindAll(ctx, specification.OrderBy{Expr: "nombre ASC"})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CabanaResponse, 0, len(cabanas))
	for _, cabana := range cabanas {
		result = append(result, toCabanaResponse(cabana))
	}
	return result, nil
}

func (s *cabanaService) GetMine(ctx context.Context, userId uuid.UUID) ([]*dto.CabanaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabanas, err := uow.CabanaRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Expr: "created_at DESC"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CabanaResponse, 0, len(cabanas))
	for _, cabana := range cabanas {
		result = append(result, toCabanaResponse(cabana))
	}
	return result, nil
}

func (s *cabanaService) Show(ctx context.Context, id uuid.UUID) (*dto.CabanaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabana, err := uow.CabanaRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if cabana == nil {
		return nil, ErrCabanaNotFound
	}

	return toCabanaResponse(cabana), nil
}

func (s *cabanaService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCabanaRequest) (*dto.CreateCabanaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabana := &entity.Cabana{
		Id:        uuid.New(),
		UserId:    userId,
		Nombre:    req.Nombre,
		Ubicacion: req.Ubicacion,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.Descripcion != "" {
		cabana.Descripcion = &req.Descripcion
	}
	if req.LogoURL != "" {
		cabana.LogoURL = &req.LogoURL
	}

	if err := uow.CabanaRepository().Create(ctx, cabana); err != nil {
		return nil, err
	}

	return &dto.CreateCabanaResponse{Id: cabana.Id}, nil
}

func (s *cabanaService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCabanaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabana, err := uow.CabanaRepository().FindOne(ctx,
		specification.ById{Id: req.Id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if cabana == nil {
		return ErrCabanaNotFound
	}

	cabana.Nombre = req.Nombre
	cabana.Ubicacion = req.Ubicacion
	cabana.Descripcion = nil
	if req.Descripcion != "" {
		cabana.Descripcion = &req.Descripcion
	}
	cabana.LogoURL = nil
	if req.LogoURL != "" {
		cabana.LogoURL = &req.LogoURL
	}
	cabana.UpdatedAt = time.Now()

	return uow.CabanaRepository().Update(ctx, cabana)
}

func (s *cabanaService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cabana, err := uow.CabanaRepository().FindOne(ctx,
		specification.ById{Id: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if cabana == nil {
		return ErrCabanaNotFound
	}

	return uow.CabanaRepository().Delete(ctx, id)
}
