package nlp

import (
	"math"
	"strings"
)

// Classify scores the normalized text against every known intent and
// returns the winner with a confidence in [0,1]. Scores are the sum of
// matched trigger weights divided by sqrt(token count), so long rambling
// utterances do not accumulate an advantage over short ones. Ties fall
// back to the fixed priority ordering, which puts emergency_call first.
func (p *Pipeline) Classify(text string) (Intent, float64) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return IntentUnknown, 0
	}

	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tokenSet[tok] = true
	}
	padded := " " + text + " "
	lengthNorm := math.Sqrt(float64(len(tokens)))

	best := IntentUnknown
	bestScore := 0.0

	for _, intent := range p.cfg.Priority {
		sum := 0.0
		for _, trigger := range p.cfg.Triggers[intent] {
			if triggerMatches(trigger.Phrase, tokenSet, padded) {
				sum += trigger.Weight
			}
		}
		score := sum / lengthNorm
		// Strict comparison: an equal score never displaces an intent
		// that ranks earlier in the priority ordering.
		if score > bestScore {
			bestScore = score
			best = intent
		}
	}

	if bestScore < p.cfg.MinConfidence {
		return IntentUnknown, 0
	}

	return best, math.Min(bestScore, 1.0)
}

// Single-word triggers match whole tokens; multi-word triggers match as
// space-delimited phrases, never as substrings of other words.
func triggerMatches(phrase string, tokenSet map[string]bool, padded string) bool {
	if strings.ContainsRune(phrase, ' ') {
		return strings.Contains(padded, " "+phrase+" ")
	}
	return tokenSet[phrase]
}
