package controller

import (
	"errors"

	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/pkg/serverutils"
	"angus-connect-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICabanaController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetMine(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type cabanaController struct {
	service service.ICabanaService
}

func NewCabanaController(service service.ICabanaService) ICabanaController {
	return &cabanaController{service: service}
}

func (c *cabanaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cabanas/v1")

	// Directory is public, writes need a session. "/mine" must register
	// before ":id" or fiber routes it to Show.
	h.Get("", c.GetAll)
	h.Get("/mine", serverutils.JwtMiddleware, c.GetMine)
	h.Get(":id", c.Show)

	auth := h.Group("", serverutils.JwtMiddleware)
	auth.Post("", c.Create)
	auth.Put(":id", c.Update)
	auth.Delete(":id", c.Delete)
}

func (c *cabanaController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all cabanas", res))
}

func (c *cabanaController) GetMine(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetMine(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get own cabanas", res))
}

func (c *cabanaController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cabana id")
	}

	res, err := c.service.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show cabana", res))
}

func (c *cabanaController) Create(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.CreateCabanaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create cabana", res))
}

func (c *cabanaController) Update(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cabana id")
	}

	var req dto.UpdateCabanaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Update(ctx.Context(), userId, &req); err != nil {
		if errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success update cabana", nil))
}

func (c *cabanaController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cabana id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		if errors.Is(err, service.ErrCabanaNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete cabana", nil))
}
