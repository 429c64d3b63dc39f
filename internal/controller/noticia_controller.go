package controller

import (
	"errors"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/pkg/serverutils"
	"angus-connect-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoticiaController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noticiaController struct {
	service service.INoticiaService
}

func NewNoticiaController(service service.INoticiaService) INoticiaController {
	return &noticiaController{service: service}
}

func (c *noticiaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/noticias/v1")

	// Feed is public; publishing is for staff only.
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)

	staff := h.Group("", serverutils.JwtMiddleware, serverutils.RequireRole("admin", "moderator"))
	staff.Post("", c.Create)
	staff.Put(":id", c.Update)
	staff.Delete(":id", c.Delete)
}

func (c *noticiaController) GetAll(ctx *fiber.Ctx) error {
	categoria := ctx.Query("categoria")

	res, err := c.service.GetAll(ctx.Context(), categoria)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get noticias", res))
}

func (c *noticiaController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid noticia id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoticiaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show noticia", res))
}

func (c *noticiaController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoticiaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create noticia", res))
}

func (c *noticiaController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid noticia id")
	}

	var req dto.UpdateNoticiaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), &req); err != nil {
		if errors.Is(err, service.ErrNoticiaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update noticia", nil))
}

func (c *noticiaController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid noticia id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrNoticiaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete noticia", nil))
}
