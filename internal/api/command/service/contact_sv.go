package commandService

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	"github.com/nassim127/seniorvoice-ai/internal/entity"
	contextPkg "github.com/nassim127/seniorvoice-ai/pkg/context"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"

	"github.com/sirupsen/logrus"
)

const contactCacheTTL = 10 * time.Minute

func (s *commandService) GetContacts(ctx context.Context, deviceID string) ([]command.ContactResponse, error) {
	contacts, err := s.loadContacts(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	responses := make([]command.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		responses = append(responses, command.ContactResponse{
			ID:        c.ID,
			Name:      c.Name,
			Phone:     c.Phone,
			CreatedAt: c.CreatedAt,
		})
	}

	return responses, nil
}

func (s *commandService) CreateContact(ctx context.Context, deviceID string, req command.CreateContactRequest) (*command.ContactResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commandRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	name := strings.TrimSpace(req.Name)

	_, err = repo.Contacts.GetContactByName(ctx, deviceID, name)
	if err == nil {
		return nil, command.ErrContactExists
	}
	if !errors.Is(err, command.ErrContactNotFound) {
		return nil, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	contact := entity.Contact{
		ID:        id,
		DeviceID:  deviceID,
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: time.Now(),
	}

	if err := repo.Contacts.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	if err := s.redisServer.InvalidateContactCache(ctx, deviceID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate contact cache")
	}

	return &command.ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Phone:     contact.Phone,
		CreatedAt: contact.CreatedAt,
	}, nil
}

func (s *commandService) DeleteContact(ctx context.Context, deviceID, contactID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	if err := repo.Contacts.DeleteContact(ctx, deviceID, contactID); err != nil {
		return err
	}

	if err := s.redisServer.InvalidateContactCache(ctx, deviceID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to invalidate contact cache")
	}

	return nil
}

// loadContacts serves the device contact list from cache when possible.
// The list feeds every interpretation, so it sits on the hot path.
func (s *commandService) loadContacts(ctx context.Context, deviceID string) ([]entity.Contact, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cached, err := s.redisServer.GetContactCache(ctx, deviceID)
	if err == nil {
		var contacts []entity.Contact
		if err := json.Unmarshal([]byte(cached), &contacts); err == nil {
			return contacts, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"device_id":  deviceID,
		}).Warn("Corrupt contact cache entry, reloading from database")
	} else if !errors.Is(err, redis.ErrNotFound) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Contact cache unavailable, falling back to database")
	}

	repo, err := s.commandRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	contacts, err := repo.Contacts.GetContactsByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(contacts); err == nil {
		if err := s.redisServer.SetContactCache(ctx, deviceID, string(payload), contactCacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to populate contact cache")
		}
	}

	return contacts, nil
}
