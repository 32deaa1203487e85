package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testFillers = []string{"euh", "hmm", "ben"}

func TestQualityScorePrefersCleanTranscript(t *testing.T) {
	clean := Candidate{
		Text: "rappelle moi demain matin docteur",
		Segments: []SegmentStats{
			{AvgLogprob: -0.3, NoSpeechProb: 0.05, CompressionRatio: 1.4},
		},
	}
	hallucinated := Candidate{
		Text: "Подписывайтесь на канал",
		Segments: []SegmentStats{
			{AvgLogprob: -0.9, NoSpeechProb: 0.4, CompressionRatio: 1.8},
		},
	}

	assert.Greater(t, clean.QualityScore(), hallucinated.QualityScore())
}

func TestQualityScoreEmptyTextScoresLowest(t *testing.T) {
	empty := Candidate{Text: "   "}
	weak := Candidate{Text: "euh"}

	assert.Less(t, empty.QualityScore(), weak.QualityScore())
}

func TestQualityScorePenalizesRepetition(t *testing.T) {
	looping := Candidate{
		Text: "merci merci merci merci merci",
		Segments: []SegmentStats{
			{AvgLogprob: -0.3, NoSpeechProb: 0.05, CompressionRatio: 1.4},
		},
	}
	normal := Candidate{
		Text: "appelle fatma demain",
		Segments: []SegmentStats{
			{AvgLogprob: -0.3, NoSpeechProb: 0.05, CompressionRatio: 1.4},
		},
	}

	assert.Greater(t, normal.QualityScore(), looping.QualityScore())
}

func TestIsRepetitive(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"merci merci merci merci", true},
		{"oui oui", false},
		{"va bien va bien va bien", true},
		{"rappelle moi demain matin docteur", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isRepetitive(tt.text), "text %q", tt.text)
	}
}

func TestSelectBestTieBreaksOnNonFillerTokens(t *testing.T) {
	shorter := Candidate{Text: "euh appelle"}
	longer := Candidate{Text: "euh appelle fatma"}

	// Same segment stats so only the text differentiates the candidates.
	stats := []SegmentStats{{AvgLogprob: -0.5, NoSpeechProb: 0.1, CompressionRatio: 1.5}}
	shorter.Segments = stats
	longer.Segments = stats

	assert.Equal(t, shorter.QualityScore(), longer.QualityScore())

	best := SelectBest([]Candidate{shorter, longer}, testFillers)
	assert.Equal(t, longer.Text, best.Text)
}

func TestToResultBlanksLowConfidenceLoops(t *testing.T) {
	c := Candidate{
		Text: "merci merci merci merci",
		Segments: []SegmentStats{
			{AvgLogprob: -1.2, NoSpeechProb: 0.6, CompressionRatio: 2.6},
		},
	}

	result := c.toResult()
	assert.Empty(t, result.Text)
	assert.LessOrEqual(t, result.Confidence, 0.35)
}

func TestToResultConfidenceFromNoSpeech(t *testing.T) {
	c := Candidate{
		Text:     "appelle fatma",
		Language: "fr",
		Segments: []SegmentStats{
			{AvgLogprob: -0.2, NoSpeechProb: 0.1, CompressionRatio: 1.3},
			{AvgLogprob: -0.4, NoSpeechProb: 0.3, CompressionRatio: 1.5},
		},
	}

	result := c.toResult()
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.Equal(t, "fr", result.Language)
	assert.Equal(t, "appelle fatma", result.Text)
}
