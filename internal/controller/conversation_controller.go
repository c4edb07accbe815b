package controller

import (
	"meditranslate-be/internal/dto"
	"meditranslate-be/internal/pkg/serverutils"
	"meditranslate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ConversationController struct {
	sessionService service.ISessionService
	messageService service.IMessageService
}

func NewConversationController(
	sessionService service.ISessionService,
	messageService service.IMessageService,
) *ConversationController {
	return &ConversationController{
		sessionService: sessionService,
		messageService: messageService,
	}
}

func (ctrl *ConversationController) RegisterRoutes(api fiber.Router) {
	group := api.Group("/conversation/v1")
	group.Post("/resolve", ctrl.Resolve)
	group.Get("/:id/messages", ctrl.Messages)
	group.Post("/message", ctrl.SendMessage)
}

// Resolve handles POST /api/conversation/v1/resolve. A device always gets a
// usable conversation back, even when its remembered one is gone.
func (ctrl *ConversationController) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result, err := ctrl.sessionService.Resolve(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Session resolved", result))
}

// Messages handles GET /api/conversation/v1/:id/messages.
func (ctrl *ConversationController) Messages(c *fiber.Ctx) error {
	conversationId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	messages, err := ctrl.messageService.History(c.UserContext(), conversationId)
	if err != nil {
		return err
	}

	return c.JSON(serverutils.SuccessResponse("Messages retrieved", messages))
}

// SendMessage handles POST /api/conversation/v1/message.
func (ctrl *ConversationController) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result, err := ctrl.messageService.SendText(c.UserContext(), &req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to translate")
	}

	return c.JSON(serverutils.SuccessResponse("Message sent", result))
}
