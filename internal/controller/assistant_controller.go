package controller

import (
	"angus-connect-be/internal/dto"
	"angus-connect-be/internal/pkg/serverutils"
	"angus-connect-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	ClearMessages(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	CheckConnection(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/messages", c.SendMessage)
	h.Get("/messages", c.GetMessages)
	h.Delete("/messages", c.ClearMessages)
	h.Get("/status", c.Status)
	h.Post("/status/check", c.CheckConnection)
}

func (c *assistantController) identity(ctx *fiber.Ctx) (uuid.UUID, string) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	email, _ := ctx.Locals("user_email").(string)
	return userId, email
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	userId, email := c.identity(ctx)

	var req dto.SendAssistantMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, email, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *assistantController) GetMessages(ctx *fiber.Ctx) error {
	userId, email := c.identity(ctx)

	res := c.service.GetMessages(userId, email)
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *assistantController) ClearMessages(ctx *fiber.Ctx) error {
	userId, email := c.identity(ctx)

	c.service.ClearMessages(userId, email)
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation cleared", nil))
}

func (c *assistantController) Status(ctx *fiber.Ctx) error {
	userId, email := c.identity(ctx)

	res := c.service.Status(userId, email)
	return ctx.JSON(serverutils.SuccessResponse("Success get status", res))
}

func (c *assistantController) CheckConnection(ctx *fiber.Ctx) error {
	userId, email := c.identity(ctx)

	res := c.service.CheckConnection(ctx.Context(), userId, email)
	return ctx.JSON(serverutils.SuccessResponse("Connection checked", res))
}
