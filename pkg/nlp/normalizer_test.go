package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestPipeline() *Pipeline {
	return &Pipeline{cfg: DefaultConfig()}
}

func TestNormalizeRemovesFillersAndPunctuation(t *testing.T) {
	p := newTestPipeline()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "filler tokens stripped",
			input:    "Euh rappelle moi, hmm, demain",
			expected: "rappelle moi demain",
		},
		{
			name:     "dialect variants collapsed",
			input:    "fakarni ghodwa sbah doctour",
			expected: "rappelle demain matin docteur",
		},
		{
			name:     "diacritics removed",
			input:    "rappelle-moi le rendez-vous à l'hôpital",
			expected: "rappelle moi le rendez vous a hopital",
		},
		{
			name:     "stuttered repeats collapsed",
			input:    "appelle appelle appelle fatma",
			expected: "appelle fatma",
		},
		{
			name:     "arabic script variants mapped",
			input:    "غدوة عندي docteur",
			expected: "demain عندي docteur",
		},
		{
			name:     "fillers are whole tokens only",
			input:    "benzine bahri",
			expected: "benzine bahri",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t  ",
			expected: "",
		},
		{
			name:     "clock colon survives",
			input:    "euh a 10:30 !",
			expected: "a 10:30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	p := newTestPipeline()

	samples := []string{
		"Euh rappelle moi demain matin doctour a 10h",
		"3ayet l fatma",
		"chnouwa el jaw lyoum ?",
		"appelle appelle le SAMU",
		"برشا دواء el lyoum",
		"",
		"quelle heure est-il",
	}

	for _, sample := range samples {
		once := p.Normalize(sample)
		assert.Equal(t, once, p.Normalize(once), "normalize must be idempotent for %q", sample)
	}
}
