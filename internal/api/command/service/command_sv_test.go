package commandService

import (
	"context"
	"testing"
	"time"

	"github.com/nassim127/seniorvoice-ai/internal/api/command"
	commandRepository "github.com/nassim127/seniorvoice-ai/internal/api/command/repository"
	"github.com/nassim127/seniorvoice-ai/internal/entity"
	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"
	"github.com/nassim127/seniorvoice-ai/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommandStore struct {
	records []entity.CommandRecord
}

func (f *fakeCommandStore) CreateCommandRecord(_ context.Context, record entity.CommandRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeCommandStore) GetCommandsByDeviceID(_ context.Context, deviceID string, limit, offset int) ([]entity.CommandRecord, int, error) {
	var out []entity.CommandRecord
	for _, r := range f.records {
		if r.DeviceID == deviceID {
			out = append(out, r)
		}
	}
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeContactStore struct {
	contacts []entity.Contact
}

func (f *fakeContactStore) CreateContact(_ context.Context, contact entity.Contact) error {
	f.contacts = append(f.contacts, contact)
	return nil
}

func (f *fakeContactStore) GetContactsByDeviceID(_ context.Context, deviceID string) ([]entity.Contact, error) {
	var out []entity.Contact
	for _, c := range f.contacts {
		if c.DeviceID == deviceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactStore) GetContactByName(_ context.Context, deviceID, name string) (entity.Contact, error) {
	for _, c := range f.contacts {
		if c.DeviceID == deviceID && c.Name == name {
			return c, nil
		}
	}
	return entity.Contact{}, command.ErrContactNotFound
}

func (f *fakeContactStore) DeleteContact(_ context.Context, deviceID, id string) error {
	for i, c := range f.contacts {
		if c.DeviceID == deviceID && c.ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return nil
		}
	}
	return command.ErrContactNotFound
}

type fakeRepo struct {
	commands *fakeCommandStore
	contacts *fakeContactStore
}

func (f *fakeRepo) NewClient(_ bool) (commandRepository.Client, error) {
	return commandRepository.Client{
		Commands: f.commands,
		Contacts: f.contacts,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type fakeRedis struct {
	pending  map[string]string
	contacts map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		pending:  map[string]string{},
		contacts: map[string]string{},
	}
}

func (f *fakeRedis) SetPendingAction(_ context.Context, deviceID, payload string, _ time.Duration) error {
	f.pending[deviceID] = payload
	return nil
}

func (f *fakeRedis) GetPendingAction(_ context.Context, deviceID string) (string, error) {
	payload, ok := f.pending[deviceID]
	if !ok {
		return "", redis.ErrNotFound
	}
	return payload, nil
}

func (f *fakeRedis) DeletePendingAction(_ context.Context, deviceID string) error {
	delete(f.pending, deviceID)
	return nil
}

func (f *fakeRedis) SetContactCache(_ context.Context, deviceID, payload string, _ time.Duration) error {
	f.contacts[deviceID] = payload
	return nil
}

func (f *fakeRedis) GetContactCache(_ context.Context, deviceID string) (string, error) {
	payload, ok := f.contacts[deviceID]
	if !ok {
		return "", redis.ErrNotFound
	}
	return payload, nil
}

func (f *fakeRedis) InvalidateContactCache(_ context.Context, deviceID string) error {
	delete(f.contacts, deviceID)
	return nil
}

func newTestService(repo *fakeRepo, cache *fakeRedis) ICommandService {
	logger := logrus.New()
	return New(logger, repo, cache, nil, nil, nlp.DefaultConfig(), utils.New())
}

func TestInterpretTextResolvesKnownContact(t *testing.T) {
	repo := &fakeRepo{
		commands: &fakeCommandStore{},
		contacts: &fakeContactStore{contacts: []entity.Contact{
			{ID: "1", DeviceID: "device-1", Name: "fatma", Phone: "+21612345678"},
		}},
	}
	svc := newTestService(repo, newFakeRedis())

	resp, err := svc.InterpretText(context.Background(), "device-1", command.InterpretRequest{
		Text: "appelle fatma",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Action)

	assert.Equal(t, nlp.IntentCallContact, resp.Action.Action)
	assert.Equal(t, "fatma", resp.Action.Slots[nlp.SlotContact])
	assert.Empty(t, resp.Action.Unresolved)
	assert.False(t, resp.NeedsConfirmation)

	require.Len(t, repo.commands.records, 1)
	assert.Equal(t, "device-1", repo.commands.records[0].DeviceID)
	assert.Equal(t, string(nlp.IntentCallContact), repo.commands.records[0].Action)
}

func TestInterpretTextUnresolvedContactParksPendingAction(t *testing.T) {
	repo := &fakeRepo{commands: &fakeCommandStore{}, contacts: &fakeContactStore{}}
	cache := newFakeRedis()
	svc := newTestService(repo, cache)

	resp, err := svc.InterpretText(context.Background(), "device-1", command.InterpretRequest{
		Text: "appelle monsieur dupont",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Action)

	assert.True(t, resp.NeedsConfirmation)
	assert.NotEmpty(t, resp.Action.Unresolved)
	assert.Contains(t, cache.pending, "device-1")
}

func TestNeedsConfirmation(t *testing.T) {
	svc := &commandService{}

	tests := []struct {
		name             string
		record           *nlp.ActionRecord
		speechConfidence float64
		want             bool
	}{
		{
			name:             "emergency is never held back",
			record:           &nlp.ActionRecord{Action: nlp.IntentEmergencyCall, Confidence: 0.21},
			speechConfidence: 0.4,
			want:             false,
		},
		{
			name:             "unknown has nothing to confirm",
			record:           &nlp.ActionRecord{Action: nlp.IntentUnknown, Confidence: 0},
			speechConfidence: 1.0,
			want:             false,
		},
		{
			name:             "unresolved slot forces confirmation",
			record:           &nlp.ActionRecord{Action: nlp.IntentCallContact, Confidence: 0.9, Unresolved: []string{nlp.SlotContact}},
			speechConfidence: 1.0,
			want:             true,
		},
		{
			name:             "low combined confidence forces confirmation",
			record:           &nlp.ActionRecord{Action: nlp.IntentCreateReminder, Confidence: 0.5},
			speechConfidence: 0.4,
			want:             true,
		},
		{
			name:             "confident interpretation executes directly",
			record:           &nlp.ActionRecord{Action: nlp.IntentCreateReminder, Confidence: 0.7},
			speechConfidence: 0.9,
			want:             false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.needsConfirmation(tt.record, tt.speechConfidence))
		})
	}
}

func TestConfirmPendingAcceptReturnsParkedAction(t *testing.T) {
	repo := &fakeRepo{commands: &fakeCommandStore{}, contacts: &fakeContactStore{}}
	cache := newFakeRedis()
	svc := newTestService(repo, cache)

	_, err := svc.InterpretText(context.Background(), "device-1", command.InterpretRequest{
		Text: "appelle monsieur dupont",
	})
	require.NoError(t, err)
	require.Contains(t, cache.pending, "device-1")

	resp, err := svc.ConfirmPending(context.Background(), "device-1", command.ConfirmRequest{Accept: true})
	require.NoError(t, err)
	require.NotNil(t, resp.Action)

	assert.Equal(t, nlp.IntentCallContact, resp.Action.Action)
	assert.False(t, resp.NeedsConfirmation)
	assert.NotContains(t, cache.pending, "device-1")
}

func TestConfirmPendingRejectDiscardsAction(t *testing.T) {
	repo := &fakeRepo{commands: &fakeCommandStore{}, contacts: &fakeContactStore{}}
	cache := newFakeRedis()
	svc := newTestService(repo, cache)

	_, err := svc.InterpretText(context.Background(), "device-1", command.InterpretRequest{
		Text: "appelle monsieur dupont",
	})
	require.NoError(t, err)

	resp, err := svc.ConfirmPending(context.Background(), "device-1", command.ConfirmRequest{Accept: false})
	require.NoError(t, err)

	assert.Nil(t, resp.Action)
	assert.NotContains(t, cache.pending, "device-1")
}

func TestConfirmPendingWithoutPendingAction(t *testing.T) {
	repo := &fakeRepo{commands: &fakeCommandStore{}, contacts: &fakeContactStore{}}
	svc := newTestService(repo, newFakeRedis())

	_, err := svc.ConfirmPending(context.Background(), "device-1", command.ConfirmRequest{Accept: true})
	assert.ErrorIs(t, err, command.ErrNoPendingAction)
}

func TestGetCommandHistoryPaginates(t *testing.T) {
	store := &fakeCommandStore{}
	for i := 0; i < 5; i++ {
		store.records = append(store.records, entity.CommandRecord{
			ID:       string(rune('a' + i)),
			DeviceID: "device-1",
			Action:   "check_time",
		})
	}
	repo := &fakeRepo{commands: store, contacts: &fakeContactStore{}}
	svc := newTestService(repo, newFakeRedis())

	resp, err := svc.GetCommandHistory(context.Background(), "device-1", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Len(t, resp.Commands, 2)
}

func TestCreateContactRejectsDuplicate(t *testing.T) {
	repo := &fakeRepo{
		commands: &fakeCommandStore{},
		contacts: &fakeContactStore{contacts: []entity.Contact{
			{ID: "1", DeviceID: "device-1", Name: "fatma"},
		}},
	}
	svc := newTestService(repo, newFakeRedis())

	_, err := svc.CreateContact(context.Background(), "device-1", command.CreateContactRequest{
		Name:  "fatma",
		Phone: "+21612345678",
	})
	assert.ErrorIs(t, err, command.ErrContactExists)
}

func TestLoadContactsPrefersCache(t *testing.T) {
	repo := &fakeRepo{commands: &fakeCommandStore{}, contacts: &fakeContactStore{}}
	cache := newFakeRedis()
	cache.contacts["device-1"] = `[{"id":"1","device_id":"device-1","name":"ahmed","phone":"+21699999999"}]`
	svc := newTestService(repo, cache)

	contacts, err := svc.GetContacts(context.Background(), "device-1")
	require.NoError(t, err)

	require.Len(t, contacts, 1)
	assert.Equal(t, "ahmed", contacts[0].Name)
}
