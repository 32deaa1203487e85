package nlp

import (
	"sort"
	"time"
)

// today is a sentinel resolved against the reference time at composition.
const today = "@today"

// composeRule declares, per intent, which slot names are meaningful, what
// gets filled in when the speaker left it out, and where the intent
// degrades when a hard requirement is missing. The table is total: every
// combination of intent and slot set maps to exactly one ActionRecord.
type composeRule struct {
	keep     []string
	defaults map[string]string
	// requireAny degrades to degradeTo when none of the listed slots were
	// extracted. An empty list means the intent stands on its own.
	requireAny []string
	degradeTo  Intent
}

var composeRules = map[Intent]composeRule{
	IntentCreateReminder: {
		keep:     []string{SlotDate, SlotTime, SlotText, SlotDuration},
		defaults: map[string]string{SlotDate: today, SlotText: "rappel"},
	},
	IntentMedicationReminder: {
		keep:       []string{SlotDate, SlotTime, SlotMedication, SlotText, SlotDuration},
		defaults:   map[string]string{SlotDate: today},
		requireAny: []string{SlotMedication, SlotText},
		degradeTo:  IntentCreateReminder,
	},
	IntentCallContact: {
		keep: []string{SlotContact},
	},
	IntentEmergencyCall: {
		keep:     []string{SlotContact},
		defaults: map[string]string{SlotContact: "urgence"},
	},
	IntentGetWeather: {
		keep:     []string{SlotCity, SlotDate},
		defaults: map[string]string{SlotCity: "Tunis", SlotDate: today},
	},
	IntentSetAlarm: {
		keep:     []string{SlotDate, SlotTime},
		defaults: map[string]string{SlotDate: today, SlotTime: "07:00"},
	},
	IntentCheckTime: {
		keep:     []string{SlotTimezone},
		defaults: map[string]string{SlotTimezone: "Africa/Tunis"},
	},
	IntentCancelReminder: {
		keep:     []string{SlotDate, SlotTime, SlotText},
		defaults: map[string]string{SlotDate: today},
	},
	IntentSendMessage: {
		keep:     []string{SlotContact, SlotText},
		defaults: map[string]string{SlotContact: "famille", SlotText: "message vocal"},
	},
	IntentPlayMedia: {
		keep:     []string{SlotMedia},
		defaults: map[string]string{SlotMedia: "musique"},
	},
	IntentUnknown: {},
}

// Compose merges the classified intent with whatever the extractors found
// and emits the final record. It never fails: uncertainty surfaces as the
// defaulted and unresolved slot lists, not as an error.
func Compose(intent Intent, confidence float64, slots []Slot, rawText string, ref time.Time) *ActionRecord {
	rule, ok := composeRules[intent]
	if !ok {
		intent, rule = IntentUnknown, composeRules[IntentUnknown]
	}

	found := make(map[string]Slot, len(slots))
	for _, s := range slots {
		if s.Value == "" {
			continue
		}
		if _, dup := found[s.Name]; !dup {
			found[s.Name] = s
		}
	}

	if len(rule.requireAny) > 0 {
		satisfied := false
		for _, name := range rule.requireAny {
			if _, ok := found[name]; ok {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return Compose(rule.degradeTo, confidence, slots, rawText, ref)
		}
	}

	record := &ActionRecord{
		Action:     intent,
		Slots:      make(map[string]string, len(rule.keep)),
		Confidence: confidence,
		RawText:    rawText,
	}

	for _, name := range rule.keep {
		if slot, ok := found[name]; ok {
			record.Slots[name] = slot.Value
			if slot.Unresolved {
				record.Unresolved = append(record.Unresolved, name)
			}
			continue
		}
		if def, ok := rule.defaults[name]; ok {
			if def == today {
				def = ref.Format("2006-01-02")
			}
			record.Slots[name] = def
			record.Defaulted = append(record.Defaulted, name)
		}
	}

	sort.Strings(record.Defaulted)
	sort.Strings(record.Unresolved)
	return record
}
