package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var composeNow = time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

// Every intent must compose a valid record even when extraction found
// nothing at all.
func TestComposeTotalOverEmptySlots(t *testing.T) {
	intents := []Intent{
		IntentCreateReminder, IntentMedicationReminder, IntentCallContact,
		IntentEmergencyCall, IntentGetWeather, IntentSetAlarm,
		IntentCheckTime, IntentCancelReminder, IntentSendMessage,
		IntentPlayMedia, IntentUnknown,
	}

	for _, intent := range intents {
		t.Run(string(intent), func(t *testing.T) {
			record := Compose(intent, 0.5, nil, "texte brut", composeNow)
			require.NotNil(t, record)
			assert.NotNil(t, record.Slots)
			assert.Equal(t, "texte brut", record.RawText)
			for name, value := range record.Slots {
				assert.NotEmpty(t, value, "slot %s must never be empty", name)
			}
		})
	}
}

func TestComposeReminderDefaults(t *testing.T) {
	record := Compose(IntentCreateReminder, 0.8, []Slot{
		{Name: SlotText, Value: "arroser les plantes"},
	}, "rappelle moi arroser les plantes", composeNow)

	assert.Equal(t, IntentCreateReminder, record.Action)
	assert.Equal(t, "arroser les plantes", record.Slots[SlotText])
	assert.Equal(t, "2026-02-28", record.Slots[SlotDate])
	assert.Equal(t, []string{SlotDate}, record.Defaulted)
}

func TestComposeMedicationDegradesWithoutMedicationOrText(t *testing.T) {
	record := Compose(IntentMedicationReminder, 0.6, []Slot{
		{Name: SlotDate, Value: "2026-03-01"},
	}, "fakarni", composeNow)

	assert.Equal(t, IntentCreateReminder, record.Action)
	assert.Equal(t, "2026-03-01", record.Slots[SlotDate])
	assert.Equal(t, "rappel", record.Slots[SlotText])
	assert.Contains(t, record.Defaulted, SlotText)
}

func TestComposeMedicationKeepsMedicationSlot(t *testing.T) {
	record := Compose(IntentMedicationReminder, 0.7, []Slot{
		{Name: SlotMedication, Value: "doliprane"},
		{Name: SlotTime, Value: "08:00"},
	}, "dwa", composeNow)

	assert.Equal(t, IntentMedicationReminder, record.Action)
	assert.Equal(t, "doliprane", record.Slots[SlotMedication])
	assert.Equal(t, "08:00", record.Slots[SlotTime])
}

func TestComposeEmergencyAlwaysProceeds(t *testing.T) {
	record := Compose(IntentEmergencyCall, 1.0, nil, "najda", composeNow)

	assert.Equal(t, IntentEmergencyCall, record.Action)
	assert.Equal(t, "urgence", record.Slots[SlotContact])
	assert.Equal(t, []string{SlotContact}, record.Defaulted)
}

func TestComposeDropsForeignSlots(t *testing.T) {
	// The contact hint extractor fires on "docteur" even for reminders;
	// composition keeps only the slot names meaningful to the intent.
	record := Compose(IntentCreateReminder, 0.8, []Slot{
		{Name: SlotText, Value: "rendez vous docteur"},
		{Name: SlotContact, Value: "docteur", Unresolved: true},
		{Name: SlotCity, Value: "Tunis"},
	}, "raw", composeNow)

	assert.NotContains(t, record.Slots, SlotContact)
	assert.NotContains(t, record.Slots, SlotCity)
	assert.Empty(t, record.Unresolved)
}

func TestComposeSurfacesUnresolvedSlots(t *testing.T) {
	record := Compose(IntentCallContact, 0.7, []Slot{
		{Name: SlotContact, Value: "fatma", Unresolved: true},
	}, "appelle fatma", composeNow)

	assert.Equal(t, "fatma", record.Slots[SlotContact])
	assert.Equal(t, []string{SlotContact}, record.Unresolved)
	assert.Empty(t, record.Defaulted)
}
