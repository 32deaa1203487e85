package commandHandler

import (
	commandService "github.com/nassim127/seniorvoice-ai/internal/api/command/service"
	"github.com/nassim127/seniorvoice-ai/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CommandHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	commandService commandService.ICommandService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	commandService commandService.ICommandService,
) *CommandHandler {
	return &CommandHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		commandService: commandService,
	}
}

func (h *CommandHandler) Start(srv fiber.Router) {
	cmd := srv.Group("/command")

	cmd.Post("/process", h.middleware.NewRateLimiter, h.ProcessCommand)
	cmd.Post("/interpret", h.middleware.NewRateLimiter, h.InterpretText)
	cmd.Post("/confirm", h.ConfirmPending)
	cmd.Get("/history", h.GetHistory)

	contacts := srv.Group("/contacts")

	contacts.Get("/", h.GetContacts)
	contacts.Post("/", h.CreateContact)
	contacts.Delete("/:id", h.DeleteContact)
}
