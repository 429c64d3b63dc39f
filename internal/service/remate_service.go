package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/entity"
	"angus-connect-be/internal/repository/specification"
	"angus-connect-be/internal/repository/unitofwork"
	"angus-connect-be/pkg/events"
	pktNats "angus-connect-be/pkg/nats"

	"github.com/google/uuid"
)

var ErrRemateNotFound = errors.New("remate not found")

const defaultRematesPageSize = 20

type IRemateService interface {
	List(ctx context.Context, query *dto.ListRematesQuery) (*dto.ListRematesResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.RemateResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRemateRequest) (*dto.CreateRemateResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateRemateRequest) error
	UpdateEstado(ctx context.Context, userId uuid.UUID, req *dto.UpdateRemateEstadoRequest) error
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type remateService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewRemateService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IRemateService {
	return &remateService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func toRemateResponse(remate *entity.Remate) dto.RemateResponse {
	descripcion := ""
	if remate.Descripcion != nil {
		descripcion = *remate.Descripcion
	}
	imagenURL := ""
	if remate.ImagenURL != nil {
		imagenURL = *remate.ImagenURL
	}

	return dto.RemateResponse{
		Id:          remate.Id,
		CabanaId:    remate.CabanaId,
		Titulo:      remate.Titulo,
		Descripcion: descripcion,
		Categoria:   string(remate.Categoria),
		Estado:      string(remate.Estado),
		Fecha:       remate.Fecha,
		Ubicacion:   remate.Ubicacion,
		PrecioBase:  remate.PrecioBase,
		ImagenURL:   imagenURL,
		CreatedAt:   remate.CreatedAt,
	}
}

func (s *remateService) List(ctx context.Context, query *dto.ListRematesQuery) (*dto.ListRematesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultRematesPageSize
	}

	filters := []specification.Specification{}
	if query.Categoria != "" {
		filters = append(filters, specification.ByCategoria{Categoria: query.Categoria})
	}
	if query.Estado != "" {
		filters = append(filters, specification.ByEstado{Estado: query.Estado})
	}
	if query.CabanaId != "" {
		cabanaId, err := uuid.Parse(query.CabanaId)
		if err != nil {
			return nil, fmt.Errorf("invalid cabana_id: %w", err)
		}
		filters = append(filters, specification.ByCabana{CabanaId: cabanaId})
	}
	if query.Proximos {
		filters = append(filters, specification.FechaDesde{Desde: time.Now()})
	}

	total, err := uow.RemateRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Expr: "fecha ASC"},
		specification.Paginate{Limit: limit, Offset: (page - 1) * limit},
	)

	remates, err := uow.RemateRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RemateResponse, 0, len(remates))
	for _, remate := range remates {
		items = append(items, toRemateResponse(remate))
	}

	return &dto.ListRematesResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *remateService) Show(ctx context.Context, id uuid.UUID) (*dto.RemateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	remate, err := uow.RemateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return nil, err
	}
	if remate == nil {
		return nil, ErrRemateNotFound
	}

	res := toRemateResponse(remate)
	return &res, nil
}

// ownedCabana loads the cabana and enforces that the caller owns it. Remate
// writes always go through the consigning cabana.
func (s *remateService) ownedCabana(ctx context.Context, uow unitofwork.UnitOfWork, userId, cabanaId uuid.UUID) (*entity.Cabana, error) {
	cabana, err := uow.CabanaRepository().FindOne(ctx,
		specification.ById{Id: cabanaId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if cabana == nil {
		return nil, ErrCabanaNotFound
	}
	return cabana, nil
}

func (s *remateService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRemateRequest) (*dto.CreateRemateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedCabana(ctx, uow, userId, req.CabanaId); err != nil {
		return nil, err
	}

	remate := &entity.Remate{
		Id:         uuid.New(),
		CabanaId:   req.CabanaId,
		Titulo:     req.Titulo,
		Categoria:  entity.RemateCategoria(req.Categoria),
		Estado:     entity.EstadoProximo,
		Fecha:      req.Fecha,
		Ubicacion:  req.Ubicacion,
		PrecioBase: req.PrecioBase,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if req.Descripcion != "" {
		remate.Descripcion = &req.Descripcion
	}
	if req.ImagenURL != "" {
		remate.ImagenURL = &req.ImagenURL
	}

	if err := uow.RemateRepository().Create(ctx, remate); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TypeRemateCreado, remate)

	return &dto.CreateRemateResponse{Id: remate.Id}, nil
}

func (s *remateService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateRemateRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	remate, err := uow.RemateRepository().FindOne(ctx, specification.ById{Id: req.Id})
	if err != nil {
		return err
	}
	if remate == nil {
		return ErrRemateNotFound
	}

	if _, err := s.ownedCabana(ctx, uow, userId, remate.CabanaId); err != nil {
		return err
	}

	remate.Titulo = req.Titulo
	remate.Categoria = entity.RemateCategoria(req.Categoria)
	remate.Fecha = req.Fecha
	remate.Ubicacion = req.Ubicacion
	remate.PrecioBase = req.PrecioBase
	remate.Descripcion = nil
	if req.Descripcion != "" {
		remate.Descripcion = &req.Descripcion
	}
	remate.ImagenURL = nil
	if req.ImagenURL != "" {
		remate.ImagenURL = &req.ImagenURL
	}
	remate.UpdatedAt = time.Now()

	return uow.RemateRepository().Update(ctx, remate)
}

// UpdateEstado moves a remate through proximo -> activo -> finalizado and
// keeps the cabana's remates_activos counter in step, atomically.
func (s *remateService) UpdateEstado(ctx context.Context, userId uuid.UUID, req *dto.UpdateRemateEstadoRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	remate, err := uow.RemateRepository().FindOne(ctx, specification.ById{Id: req.Id})
	if err != nil {
		return err
	}
	if remate == nil {
		return ErrRemateNotFound
	}

	if _, err := s.ownedCabana(ctx, uow, userId, remate.CabanaId); err != nil {
		return err
	}

	oldEstado := remate.Estado
	newEstado := entity.RemateEstado(req.Estado)
	if oldEstado == newEstado {
		return nil
	}
	if oldEstado == entity.EstadoFinalizado {
		return fmt.Errorf("remate already finalizado")
	}

	delta := 0
	if newEstado == entity.EstadoActivo {
		delta++
	}
	if oldEstado == entity.EstadoActivo {
		delta--
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RemateRepository().UpdateEstado(ctx, remate.Id, newEstado); err != nil {
		return err
	}

	if delta != 0 {
		if err := uow.CabanaRepository().AdjustRematesActivos(ctx, remate.CabanaId, delta); err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	remate.Estado = newEstado
	switch newEstado {
	case entity.EstadoActivo:
		s.publishEvent(ctx, events.TypeRemateActivado, remate)
	case entity.EstadoFinalizado:
		s.publishEvent(ctx, events.TypeRemateFinalizado, remate)
	}

	return nil
}

func (s *remateService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	remate, err := uow.RemateRepository().FindOne(ctx, specification.ById{Id: id})
	if err != nil {
		return err
	}
	if remate == nil {
		return ErrRemateNotFound
	}

	if _, err := s.ownedCabana(ctx, uow, userId, remate.CabanaId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RemateRepository().Delete(ctx, id); err != nil {
		return err
	}

	if remate.Estado == entity.EstadoActivo {
		if err := uow.CabanaRepository().AdjustRematesActivos(ctx, remate.CabanaId, -1); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *remateService) publishEvent(ctx context.Context, eventType string, remate *entity.Remate) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"entity_type": "remate",
			"entity_id":   remate.Id.String(),
			"titulo":      remate.Titulo,
			"categoria":   string(remate.Categoria),
			"estado":      string(remate.Estado),
			"fecha":       remate.Fecha.Format(time.RFC3339),
			"cabana_id":   remate.CabanaId.String(),
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
