package commandService

import (
	"context"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	commandRepository "github.com/nassim127/seniorvoice-ai/internal/api/command/repository"
	"github.com/nassim127/seniorvoice-ai/pkg/audio"
	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"
	"github.com/nassim127/seniorvoice-ai/pkg/s3"
	"github.com/nassim127/seniorvoice-ai/pkg/utils"

	"github.com/sirupsen/logrus"
)

type ICommandService interface {
	ProcessAudioCommand(ctx context.Context, deviceID string, req command.ProcessCommandRequest) (*command.CommandResponse, error)
	InterpretText(ctx context.Context, deviceID string, req command.InterpretRequest) (*command.CommandResponse, error)
	ConfirmPending(ctx context.Context, deviceID string, req command.ConfirmRequest) (*command.CommandResponse, error)
	GetCommandHistory(ctx context.Context, deviceID string, page, limit int) (*command.HistoryResponse, error)

	GetContacts(ctx context.Context, deviceID string) ([]command.ContactResponse, error)
	CreateContact(ctx context.Context, deviceID string, req command.CreateContactRequest) (*command.ContactResponse, error)
	DeleteContact(ctx context.Context, deviceID, contactID string) error
}

type commandService struct {
	log         *logrus.Logger
	commandRepo commandRepository.Repository
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	transcriber audio.ITranscriber
	nlpConfig   *nlp.Config
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	commandRepo commandRepository.Repository,
	redisServer redis.IRedis,
	s3Client s3.ItfS3,
	transcriber audio.ITranscriber,
	nlpConfig *nlp.Config,
	utils utils.IUtils,
) ICommandService {
	if nlpConfig == nil {
		nlpConfig = nlp.DefaultConfig()
	}

	return &commandService{
		log:         log,
		commandRepo: commandRepo,
		redisServer: redisServer,
		s3Client:    s3Client,
		transcriber: transcriber,
		nlpConfig:   nlpConfig,
		utils:       utils,
	}
}
