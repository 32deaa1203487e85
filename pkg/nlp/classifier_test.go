package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every declared intent must be reachable from at least one French and one
// dialect utterance with a confidence above the configured minimum.
func TestClassifyCanonicalUtterances(t *testing.T) {
	p := newTestPipeline()

	tests := []struct {
		utterance string
		expected  Intent
	}{
		{"rappelle moi le rendez vous", IntentCreateReminder},
		{"fakarni ghodwa", IntentCreateReminder},
		{"rappelle moi de prendre mon cachet", IntentMedicationReminder},
		{"fakarni bech nekhou dwa", IntentMedicationReminder},
		{"appelle fatma", IntentCallContact},
		{"3ayet l fatma", IntentCallContact},
		{"appelle le samu vite", IntentEmergencyCall},
		{"najda", IntentEmergencyCall},
		{"quel temps fait il demain", IntentGetWeather},
		{"chnouwa el jaw lyoum", IntentGetWeather},
		{"mets une alarme a 7h", IntentSetAlarm},
		{"7ott el monabbih", IntentSetAlarm},
		{"quelle heure est il", IntentCheckTime},
		{"wa9tech", IntentCheckTime},
		{"annule le rappel de demain", IntentCancelReminder},
		{"fasakh el rappel", IntentCancelReminder},
		{"envoie un message a mon fils", IntentSendMessage},
		{"ab3ath message l fatma", IntentSendMessage},
		{"mets la radio", IntentPlayMedia},
		{"7ottli el coran", IntentPlayMedia},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			intent, confidence := p.Classify(p.Normalize(tt.utterance))
			assert.Equal(t, tt.expected, intent)
			assert.GreaterOrEqual(t, confidence, p.cfg.MinConfidence)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

// An emergency trigger must never be outranked by a coincidental overlap
// with a lower-stakes intent.
func TestClassifyEmergencyPriority(t *testing.T) {
	p := newTestPipeline()

	utterances := []string{
		"appelle le samu",
		"urgence rappelle le docteur",
		"envoie un message c est une urgence",
		"appelle une ambulance demain matin",
	}

	for _, utterance := range utterances {
		intent, _ := p.Classify(p.Normalize(utterance))
		assert.Equal(t, IntentEmergencyCall, intent, "utterance %q", utterance)
	}
}

func TestClassifyUnknown(t *testing.T) {
	p := newTestPipeline()

	tests := []struct {
		name  string
		input string
	}{
		{"no trigger at all", "le ciel est bleu ce jardin est joli"},
		{"empty text", ""},
		{"foreign script", "это просто предложение"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, confidence := p.Classify(p.Normalize(tt.input))
			assert.Equal(t, IntentUnknown, intent)
			assert.Zero(t, confidence)
		})
	}
}

func TestClassifyTieBreakUsesPriorityOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Triggers = map[Intent][]Trigger{
		IntentCancelReminder: {{"stop", 1.0}},
		IntentPlayMedia:      {{"stop", 1.0}},
	}
	p := &Pipeline{cfg: cfg}

	intent, _ := p.Classify("stop")
	assert.Equal(t, IntentCancelReminder, intent)
}
