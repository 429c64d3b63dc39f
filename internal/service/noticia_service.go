package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"
	"angus-connect-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var ErrNoticiaNotFound = errors.New("noticia not found")

type INoticiaService interface {
	GetAll(ctx context.Context, categoria string) ([]*dto.NoticiaResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoticiaResponse, error)
	Create(ctx context.Context, req *dto.CreateNoticiaRequest) (*dto.CreateNoticiaResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoticiaRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noticiaService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewNoticiaService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) INoticiaService {
	return &noticiaService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func toNoticiaResponse(noticia *entity.Noticia) *dto.NoticiaResponse {
	imagenURL := ""
	if noticia.ImagenURL != nil {
		imagenURL = *noticia.ImagenURL
	}

	return &dto.NoticiaResponse{
		Id:               noticia.Id,
		Titulo:           noticia.Titulo,
		Contenido:        noticia.Contenido,
		Autor:            noticia.Autor,
		Categoria:        noticia.Categoria,
		ImagenURL:        imagenURL,
		FechaPublicacion: noticia.FechaPublicacion,
		CreatedAt:        noticia.CreatedAt,
	}
}

func (s *noticiaService) GetAll(ctx context.Context, categoria string) ([]*dto.NoticiaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Expr: "fecha_publicacion DESC"},
	}
	if categoria != "" {
		specs = append(specs, specification.ByCategoria{Categoria: categoria})
	}

	noticias, err := uow.NoticiaRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NoticiaResponse, 0, len(noticias))
	for _, noticia := range noticias {
		result = append(result, toNoticiaResponse(noticia))
	}
	return result, nil
}

func (s *noticiaService) Show(ctx context.Context, id uuid.UUID) (*dto.NoticiaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	noticia, err := uow.NoticiaRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if noticia == nil {
		return nil, ErrNoticiaNotFound
	}

	return toNoticiaResponse(noticia), nil
}

func (s *noticiaService) Create(ctx context.Context, req *dto.CreateNoticiaRequest) (*dto.CreateNoticiaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	noticia := &entity.Noticia{
		Id:               uuid.New(),
		Titulo:           req.Titulo,
		Contenido:        req.Contenido,
		Autor:            req.Autor,
		Categoria:        req.Categoria,
		FechaPublicacion: time.Now(),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if req.ImagenURL != "" {
		noticia.ImagenURL = &req.ImagenURL
	}

	if err := uow.NoticiaRepository().Create(ctx, noticia); err != nil {
		return nil, err
	}

	// Hand off fan-out to the worker so the request returns immediately.
	payload, err := json.Marshal(dto.PublishNoticiaMessage{NoticiaId: noticia.Id})
	if err == nil {
		_ = s.publisherService.Publish(ctx, payload)
	}

	return &dto.CreateNoticiaResponse{Id: noticia.Id}, nil
}

func (s *noticiaService) Update(ctx context.Context, req *dto.UpdateNoticiaRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	noticia, err := uow.NoticiaRepository().FindOne(ctx, specification.ById{Id: req.Id})
	if err != nil {
		return err
	}
	if noticia == nil {
		return ErrNoticiaNotFound
	}

	noticia.Titulo = req.Titulo
	noticia.Contenido = req.Contenido
	noticia.Autor = req.Autor
	noticia.Categoria = req.Categoria
	noticia.ImagenURL = nil
	if req.ImagenURL != "" {
		noticia.ImagenURL = &req.ImagenURL
	}
	noticia.UpdatedAt = time.Now()

	return uow.NoticiaRepository().Update(ctx, noticia)
}

func (s *noticiaService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	noticia, err := uow.NoticiaRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return err
	}
	if noticia == nil {
		return ErrNoticiaNotFound
	}

	return uow.NoticiaRepository().Delete(ctx, id)
}
