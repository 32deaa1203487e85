package commandHandler

import (
	"errors"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"
	"github.com/nassim127/seniorvoice-ai/pkg/handlerUtil"
	"github.com/nassim127/seniorvoice-ai/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CommandHandler) GetContacts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing get contacts request")

	contacts, err := h.commandService.GetContacts(c, deviceID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_contacts")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"contacts": contacts,
		})
	}
}

func (h *CommandHandler) CreateContact(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing create contact request")

	var req command.CreateContactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	contact, err := h.commandService.CreateContact(c, deviceID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_contact")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, contact)
	}
}

func (h *CommandHandler) DeleteContact(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing delete contact request")

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("contact ID is required"), ctx.Path())
	}

	if err := h.commandService.DeleteContact(c, deviceID, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_contact")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Contact deleted successfully",
		})
	}
}
