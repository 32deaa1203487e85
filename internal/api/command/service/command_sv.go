package commandService

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	"github.com/nassim127/seniorvoice-ai/internal/entity"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"
	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"
	"github.com/nassim127/seniorvoice-ai/pkg/utils"

	"github.com/sirupsen/logrus"
)

const (
	// Interpretations below this confidence are read back to the speaker
	// instead of being executed directly.
	confirmationThreshold = 0.35

	pendingActionTTL = 2 * time.Minute
)

func (s *commandService) ProcessAudioCommand(ctx context.Context, deviceID string, req command.ProcessCommandRequest) (*command.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateAudioFile(req.AudioFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid audio file")

		switch {
		case errors.Is(err, utils.ErrFileTooLarge):
			return nil, command.ErrAudioFileTooLarge
		case errors.Is(err, utils.ErrUnsupportedAudio):
			return nil, command.ErrUnsupportedFormat
		default:
			return nil, command.ErrInvalidAudioFile
		}
	}

	audioPath, err := s.saveTempAudio(req.AudioFile)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to save audio file")
		return nil, err
	}
	defer os.Remove(audioPath)

	transcription, err := s.transcriber.TranscribeCommand(ctx, audioPath)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to transcribe audio")
		return nil, command.ErrTranscriptionFailed
	}

	audioURL := ""
	if s.s3Client != nil {
		audioURL, err = s.s3Client.UploadRecording(deviceID, req.AudioFile)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to archive recording, continuing without audio URL")
			audioURL = ""
		}
	}

	return s.interpret(ctx, deviceID, interpretation{
		rawText:          transcription.Text,
		language:         transcription.Language,
		speechConfidence: transcription.Confidence,
		audioURL:         audioURL,
	})
}

func (s *commandService) InterpretText(ctx context.Context, deviceID string, req command.InterpretRequest) (*command.CommandResponse, error) {
	return s.interpret(ctx, deviceID, interpretation{
		rawText:          req.Text,
		speechConfidence: 1.0,
	})
}

type interpretation struct {
	rawText          string
	language         string
	speechConfidence float64
	audioURL         string
}

func (s *commandService) interpret(ctx context.Context, deviceID string, in interpretation) (*command.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	contacts, err := s.loadContacts(ctx, deviceID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to load contacts, interpreting without contact list")
		contacts = nil
	}

	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.Name)
	}

	pipeline := nlp.New(s.nlpConfig.WithContacts(names))
	record := pipeline.Process(in.rawText, time.Now())

	needsConfirmation := s.needsConfirmation(record, in.speechConfidence)

	if err := s.persistRecord(ctx, deviceID, record, in); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to persist command record")
		return nil, err
	}

	if needsConfirmation {
		if err := s.parkPendingAction(ctx, deviceID, record, in); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to park pending action")
		}
	}

	return &command.CommandResponse{
		Transcript:        in.rawText,
		Language:          in.language,
		SpeechConfidence:  in.speechConfidence,
		Action:            record,
		NeedsConfirmation: needsConfirmation,
		AudioURL:          in.audioURL,
	}, nil
}

// needsConfirmation gates risky interpretations behind a spoken read-back.
// Emergency calls are never held back; a delayed emergency is worse than a
// false positive the speaker can cancel.
func (s *commandService) needsConfirmation(record *nlp.ActionRecord, speechConfidence float64) bool {
	if record.Action == nlp.IntentEmergencyCall {
		return false
	}
	if record.Action == nlp.IntentUnknown {
		return false
	}
	if len(record.Unresolved) > 0 {
		return true
	}
	return record.Confidence*speechConfidence < confirmationThreshold
}

func (s *commandService) parkPendingAction(ctx context.Context, deviceID string, record *nlp.ActionRecord, in interpretation) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return err
	}

	pending := entity.PendingAction{
		DeviceID:         deviceID,
		Record:           string(recordJSON),
		AudioURL:         in.audioURL,
		Language:         in.language,
		SpeechConfidence: in.speechConfidence,
		CreatedAt:        time.Now(),
	}

	payload, err := json.Marshal(pending)
	if err != nil {
		return err
	}

	return s.redisServer.SetPendingAction(ctx, deviceID, string(payload), pendingActionTTL)
}

func (s *commandService) ConfirmPending(ctx context.Context, deviceID string, req command.ConfirmRequest) (*command.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	payload, err := s.redisServer.GetPendingAction(ctx, deviceID)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, command.ErrNoPendingAction
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to fetch pending action")
		return nil, err
	}

	if err := s.redisServer.DeletePendingAction(ctx, deviceID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to delete pending action")
	}

	if !req.Accept {
		return &command.CommandResponse{
			Action:            nil,
			NeedsConfirmation: false,
		}, nil
	}

	var pending entity.PendingAction
	if err := json.Unmarshal([]byte(payload), &pending); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to decode pending action")
		return nil, err
	}

	var record nlp.ActionRecord
	if err := json.Unmarshal([]byte(pending.Record), &record); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to decode pending action record")
		return nil, err
	}

	return &command.CommandResponse{
		Transcript:        record.RawText,
		Language:          pending.Language,
		SpeechConfidence:  pending.SpeechConfidence,
		Action:            &record,
		NeedsConfirmation: false,
		AudioURL:          pending.AudioURL,
	}, nil
}

func (s *commandService) GetCommandHistory(ctx context.Context, deviceID string, page, limit int) (*command.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	records, total, err := repo.Commands.GetCommandsByDeviceID(ctx, deviceID, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]command.CommandHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, command.CommandHistoryItem{
			ID:               r.ID,
			RawText:          r.RawText,
			Action:           r.Action,
			Slots:            r.Slots,
			Confidence:       r.Confidence,
			SpeechConfidence: r.SpeechConfidence,
			Language:         r.Language,
			AudioURL:         r.AudioURL,
			CreatedAt:        r.CreatedAt,
		})
	}

	return &command.HistoryResponse{
		Commands: items,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (s *commandService) persistRecord(ctx context.Context, deviceID string, record *nlp.ActionRecord, in interpretation) error {
	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		return err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	return repo.Commands.CreateCommandRecord(ctx, entity.CommandRecord{
		ID:               id,
		DeviceID:         deviceID,
		RawText:          in.rawText,
		Action:           string(record.Action),
		Slots:            record.Slots,
		Confidence:       record.Confidence,
		SpeechConfidence: in.speechConfidence,
		Language:         in.language,
		AudioURL:         in.audioURL,
		CreatedAt:        time.Now(),
	})
}

func (s *commandService) saveTempAudio(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "command-*"+filepath.Ext(file.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}

	return dst.Name(), nil
}
