package audio

import (
	"errors"
	"math"
	"regexp"
	"strings"
)

var ErrNoTranscription = errors.New("no transcription attempt succeeded")

// SegmentStats carries the per-segment statistics the speech engine
// reports alongside the text.
type SegmentStats struct {
	AvgLogprob       float64
	NoSpeechProb     float64
	CompressionRatio float64
}

// Candidate is one transcription attempt awaiting selection.
type Candidate struct {
	Text     string
	Language string
	Segments []SegmentStats
}

// Characters expected in Latin-script French, Arabic script or digits.
// Anything outside this set usually means the engine hallucinated in the
// wrong language.
var allowedCharRe = regexp.MustCompile(`[a-zA-Z\x{00C0}-\x{024F}\x{0600}-\x{06FF}0-9\s'.,!?;:()\-]`)

// QualityScore rates how plausible a transcript is for this speaker
// population. Higher is better; an empty transcript scores very low so a
// silent attempt never beats a real one.
func (c Candidate) QualityScore() float64 {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return -999.0
	}

	runes := []rune(text)
	length := float64(len(runes))

	allowed := 0.0
	cyrillic := 0.0
	for _, r := range runes {
		if allowedCharRe.MatchString(string(r)) {
			allowed++
		}
		if r >= 'Ѐ' && r <= 'ӿ' {
			cyrillic++
		}
	}
	allowedRatio := allowed / length
	cyrRatio := cyrillic / length

	avgLogprob, avgNoSpeech, avgCompression := c.segmentAverages()

	repetitionPenalty := 0.0
	if isRepetitive(text) {
		repetitionPenalty = 1.8
	}
	compressionPenalty := math.Max(0, avgCompression-2.4)

	return 2.5*allowedRatio +
		avgLogprob -
		1.3*avgNoSpeech -
		0.8*compressionPenalty -
		3.2*cyrRatio -
		repetitionPenalty
}

func (c Candidate) segmentAverages() (logprob, noSpeech, compression float64) {
	if len(c.Segments) == 0 {
		// Pessimistic priors for engines that return no segment stats.
		return -1.5, 0.5, 2.0
	}
	for _, seg := range c.Segments {
		logprob += seg.AvgLogprob
		noSpeech += seg.NoSpeechProb
		compression += seg.CompressionRatio
	}
	n := float64(len(c.Segments))
	return logprob / n, noSpeech / n, compression / n
}

// isRepetitive detects the looping phrases whisper-style engines produce
// on near-silent audio ("merci merci merci merci").
func isRepetitive(text string) bool {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < 3 {
		return false
	}

	distinct := make(map[string]bool, len(words))
	for _, w := range words {
		distinct[w] = true
	}
	if len(distinct) <= 2 && len(words) >= 4 {
		return true
	}

	pair := words[0] + " " + words[1]
	return strings.Count(strings.ToLower(text), pair) >= 3
}

// SelectBest picks the candidate with the highest quality score. Equal
// scores are broken in favor of the candidate carrying more non-filler
// tokens, i.e. more usable content.
func SelectBest(candidates []Candidate, fillers []string) Candidate {
	best := candidates[0]
	bestScore := best.QualityScore()

	for _, c := range candidates[1:] {
		score := c.QualityScore()
		if score > bestScore ||
			(score == bestScore && nonFillerTokens(c.Text, fillers) > nonFillerTokens(best.Text, fillers)) {
			best = c
			bestScore = score
		}
	}
	return best
}

func nonFillerTokens(text string, fillers []string) int {
	fillerSet := make(map[string]bool, len(fillers))
	for _, f := range fillers {
		fillerSet[f] = true
	}

	count := 0
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if !fillerSet[tok] {
			count++
		}
	}
	return count
}

// toResult finalizes a selected candidate: confidence derives from the
// engine's no-speech probability, and low-confidence repetitive loops are
// blanked rather than forwarded to the intent pipeline as real speech.
func (c Candidate) toResult() *Result {
	text := strings.TrimSpace(c.Text)

	confidence := 0.4
	if len(c.Segments) > 0 {
		_, avgNoSpeech, _ := c.segmentAverages()
		confidence = math.Max(0, math.Min(1, 1-avgNoSpeech))
	}

	if isRepetitive(text) && confidence < 0.75 {
		text = ""
		confidence = math.Min(confidence, 0.35)
	}

	language := c.Language
	if language == "" {
		language = "unknown"
	}

	return &Result{
		Text:       text,
		Confidence: confidence,
		Language:   language,
	}
}
