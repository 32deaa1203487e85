package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize turns a raw transcript into the canonical form every other
// stage operates on. It is total over any string input and idempotent:
// normalizing an already normalized string returns it unchanged.
//
// Order matters: fillers are stripped before dialect variants are
// collapsed, because a hesitation token can otherwise sit in the middle
// of a variant phrase and keep it from matching.
func (p *Pipeline) Normalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))
	text = stripDiacritics(text)

	// Punctuation and stray symbols become spaces. The colon survives so
	// clock times like 10:30 stay recognizable downstream.
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == ':' {
			return r
		}
		return ' '
	}, text)

	fillers := make(map[string]bool, len(p.cfg.Fillers))
	for _, f := range p.cfg.Fillers {
		fillers[f] = true
	}

	var out []string
	for _, tok := range strings.Fields(text) {
		if fillers[tok] {
			continue
		}
		if mapped, ok := p.cfg.DialectVariants[tok]; ok {
			tok = mapped
		}
		if tok == "" {
			continue
		}
		// Stuttered repeats ("demain demain demain") collapse to one token.
		if len(out) > 0 && out[len(out)-1] == tok {
			continue
		}
		out = append(out, tok)
	}

	return strings.Join(out, " ")
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
