package nlp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReminderEndToEnd(t *testing.T) {
	p := New(nil)
	now := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

	record := p.Process("Euh rappelle moi demain matin doctour a 10h", now)
	require.NotNil(t, record)

	assert.Equal(t, IntentCreateReminder, record.Action)
	assert.Equal(t, "2026-03-01", record.Slots[SlotDate])
	assert.Equal(t, "10:00", record.Slots[SlotTime])
	assert.Contains(t, record.Slots[SlotText], "docteur")
	assert.Equal(t, "Euh rappelle moi demain matin doctour a 10h", record.RawText)
	assert.Greater(t, record.Confidence, 0.0)
}

func TestProcessVaguePeriodFallsBackToTable(t *testing.T) {
	p := New(nil)
	now := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

	record := p.Process("rappelle moi demain matin docteur", now)

	assert.Equal(t, IntentCreateReminder, record.Action)
	assert.Equal(t, "2026-03-01", record.Slots[SlotDate])
	assert.Equal(t, "08:00", record.Slots[SlotTime])
}

func TestProcessUnknownFallback(t *testing.T) {
	p := New(nil)

	record := p.Process("le ciel est bleu ce jardin est joli", time.Now())

	assert.Equal(t, IntentUnknown, record.Action)
	assert.Zero(t, record.Confidence)
	assert.Empty(t, record.Slots)
}

func TestProcessUnresolvedContact(t *testing.T) {
	p := New(DefaultConfig().WithContacts(nil))

	record := p.Process("appelle Fatma", time.Now())

	assert.Equal(t, IntentCallContact, record.Action)
	assert.Equal(t, "fatma", record.Slots[SlotContact])
	assert.Equal(t, []string{SlotContact}, record.Unresolved)
}

func TestProcessEmergencyIgnoresAmbiguity(t *testing.T) {
	p := New(nil)

	record := p.Process("euh appelle le samu vite", time.Now())

	assert.Equal(t, IntentEmergencyCall, record.Action)
}

func TestProcessToleratesHostileInput(t *testing.T) {
	p := New(nil)

	inputs := []string{
		"",
		"     ",
		"это просто предложение",
		"!!!???...;;;",
		"\x00\x01\x02",
	}

	for _, input := range inputs {
		record := p.Process(input, time.Now())
		require.NotNil(t, record, "input %q", input)
		assert.Equal(t, IntentUnknown, record.Action)
	}
}

// The serialized record must omit unpopulated slots entirely so consumers
// can rely on key presence.
func TestActionRecordJSONShape(t *testing.T) {
	p := New(nil)
	now := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

	record := p.Process("rappelle moi demain matin docteur", now)

	raw, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Contains(t, decoded, "action")
	assert.Contains(t, decoded, "slots")
	assert.Contains(t, decoded, "confidence")
	assert.Contains(t, decoded, "raw_text")

	slots, ok := decoded["slots"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, slots, SlotContact)
	assert.NotContains(t, slots, SlotMedia)
	for _, value := range slots {
		assert.NotNil(t, value)
	}
}
