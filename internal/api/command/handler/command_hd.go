package commandHandler

import (
	"strconv"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"
	"github.com/nassim127/seniorvoice-ai/pkg/handlerUtil"
	"github.com/nassim127/seniorvoice-ai/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *CommandHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing voice command request")

	audioFile, err := ctx.FormFile("audio")
	if err != nil {
		return errHandler.Handle(ctx, requestID, command.ErrInvalidAudioFile, ctx.Path(), "parse_audio_file")
	}

	req := command.ProcessCommandRequest{AudioFile: audioFile}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.commandService.ProcessAudioCommand(c, deviceID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_audio_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) InterpretText(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing text interpretation request")

	var req command.InterpretRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	response, err := h.commandService.InterpretText(c, deviceID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "interpret_text")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) ConfirmPending(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing confirmation request")

	var req command.ConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	response, err := h.commandService.ConfirmPending(c, deviceID, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "confirm_pending")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *CommandHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	deviceID := h.middleware.GetDeviceID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"device_id":  deviceID,
		"path":       ctx.Path(),
	}).Debug("Processing command history request")

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	response, err := h.commandService.GetCommandHistory(c, deviceID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_command_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}
