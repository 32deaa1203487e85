package nlp

import "time"

type Intent string

const (
	IntentCreateReminder     Intent = "create_reminder"
	IntentMedicationReminder Intent = "medication_reminder"
	IntentCallContact        Intent = "call_contact"
	IntentEmergencyCall      Intent = "emergency_call"
	IntentGetWeather         Intent = "get_weather"
	IntentSetAlarm           Intent = "set_alarm"
	IntentCheckTime          Intent = "check_time"
	IntentCancelReminder     Intent = "cancel_reminder"
	IntentSendMessage        Intent = "send_message"
	IntentPlayMedia          Intent = "play_media"
	IntentUnknown            Intent = "unknown"
)

// Slot names form a closed vocabulary; which names apply depends on the intent.
const (
	SlotDate       = "date"
	SlotTime       = "time"
	SlotContact    = "contact"
	SlotText       = "text"
	SlotMedication = "medication"
	SlotMedia      = "media"
	SlotDuration   = "duration"
	SlotCity       = "city"
	SlotTimezone   = "timezone"
)

// Span locates a matched value inside the normalized text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Slot struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Span       Span   `json:"span"`
	Unresolved bool   `json:"unresolved,omitempty"`
	Defaulted  bool   `json:"defaulted,omitempty"`
}

// ActionRecord is the final output of the pipeline. Slots only carries
// populated entries so consumers can rely on key presence instead of
// null checks.
type ActionRecord struct {
	Action     Intent            `json:"action"`
	Slots      map[string]string `json:"slots"`
	Confidence float64           `json:"confidence"`
	RawText    string            `json:"raw_text"`
	Defaulted  []string          `json:"defaulted,omitempty"`
	Unresolved []string          `json:"unresolved,omitempty"`
}

type IPipeline interface {
	Process(rawText string, now time.Time) *ActionRecord
	Normalize(raw string) string
	Classify(text string) (Intent, float64)
}
