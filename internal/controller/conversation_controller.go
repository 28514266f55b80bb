package controller

import (
	"rag-chat-be/internal/pkg/apperror"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxSessionIdLength = 128

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type conversationController struct {
	queryService service.IQueryService
}

func NewConversationController(queryService service.IQueryService) IConversationController {
	return &conversationController{
		queryService: queryService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	r.Get("/conversation/:session_id", c.Show)
	r.Delete("/conversation/:session_id", c.Clear)
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.queryService.GetConversation(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *conversationController) Clear(ctx *fiber.Ctx) error {
	sessionId, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.queryService.ClearConversation(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func sessionIdParam(ctx *fiber.Ctx) (string, error) {
	sessionId := ctx.Params("session_id")
	if len(sessionId) > maxSessionIdLength {
		return "", apperror.NewInvalidInput("session id too long")
	}
	return sessionId, nil
}
