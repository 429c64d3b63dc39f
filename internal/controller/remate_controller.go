package controller

import (
	"errors"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/pkg/serverutils"
	"angus-connect-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRemateController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	UpdateEstado(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type remateController struct {
	service service.IRemateService
}

func NewRemateController(service service.IRemateService) IRemateController {
	return &remateController{service: service}
}

func (c *remateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/remates/v1")

	// Catalog is public, writes need a session.
	h.Get("", c.List)
	h.Get(":id", c.Show)

	auth := h.Group("", serverutils.JwtMiddleware)
	auth.Post("", c.Create)
	auth.Put(":id", c.Update)
	auth.Patch(":id/estado", c.UpdateEstado)
	auth.Delete(":id", c.Delete)
}

func (c *remateController) List(ctx *fiber.Ctx) error {
	var query dto.ListRematesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get remates", res))
}

func (c *remateController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid remate id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRemateNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show remate", res))
}

func (c *remateController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateRemateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		if errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create remate", res))
}

func (c *remateController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid remate id")
	}

	var req dto.UpdateRemateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrRemateNotFound) || errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update remate", nil))
}

func (c *remateController) UpdateEstado(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid remate id")
	}

	var req dto.UpdateRemateEstadoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.UpdateEstado(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrRemateNotFound) || errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update remate estado", nil))
}

func (c *remateController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid remate id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrRemateNotFound) || errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete remate", nil))
}
