package nlp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Every extractor has the same shape: it scans the normalized text and
// either returns a typed slot with the span it matched, or nil. Extractors
// never see each other's output; when the text mentions the same thing
// twice, the leftmost mention wins.
type extractorFunc func(text string, ref time.Time) *Slot

func (p *Pipeline) extractors() []extractorFunc {
	return []extractorFunc{
		p.extractDate,
		p.extractTime,
		p.extractContact,
		p.extractMedication,
		p.extractDuration,
		p.extractMedia,
		p.extractCity,
		p.extractSummary,
	}
}

var (
	clockRe   = regexp.MustCompile(`\b([01]?\d|2[0-3])\s*h(?:\s*([0-5]\d))?\b`)
	colonRe   = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	dayRe     = regexp.MustCompile(`\b([1-9]|[12]\d|3[01])\s+(janvier|fevrier|mars|avril|mai|juin|juillet|aout|septembre|octobre|novembre|decembre)\b`)
	contactRe = regexp.MustCompile(`\b(?:appelle|contacte|telephone a|dis a)\s+([\p{L}\d' ]+)`)
	medRe     = regexp.MustCompile(`\b(?:cachet|comprime)s?\s+(?:de\s+)?(\p{L}+)`)
	durRe     = regexp.MustCompile(`\b(?:pendant|dans)\s+(\d{1,3})\s*(minute|minutes|heure|heures)\b`)
)

var weekdays = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

var months = map[string]time.Month{
	"janvier": time.January, "fevrier": time.February, "mars": time.March,
	"avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "aout": time.August, "septembre": time.September,
	"octobre": time.October, "novembre": time.November, "decembre": time.December,
}

// extractTime prefers an explicit clock mention ("a 10h", "10:30") over a
// vague day period; "demain matin a 10h" yields 10:00, not the morning
// default. Vague periods resolve through the configured representative
// table.
func (p *Pipeline) extractTime(text string, _ time.Time) *Slot {
	type hit struct {
		idx, end     int
		hour, minute int
	}
	var best *hit

	for _, re := range []*regexp.Regexp{clockRe, colonRe} {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		h, _ := strconv.Atoi(text[loc[2]:loc[3]])
		m := 0
		if loc[4] >= 0 {
			m, _ = strconv.Atoi(text[loc[4]:loc[5]])
		}
		if best == nil || loc[0] < best.idx {
			best = &hit{idx: loc[0], end: loc[1], hour: h, minute: m}
		}
	}
	if best != nil {
		return &Slot{
			Name:  SlotTime,
			Value: fmt.Sprintf("%02d:%02d", best.hour, best.minute),
			Span:  Span{Start: best.idx, End: best.end},
		}
	}

	period, idx := "", -1
	for phrase := range p.cfg.VaguePeriods {
		at := phraseIndex(text, phrase)
		if at < 0 {
			continue
		}
		if idx < 0 || at < idx || (at == idx && len(phrase) > len(period)) {
			period, idx = phrase, at
		}
	}
	if idx < 0 {
		return nil
	}
	return &Slot{
		Name:  SlotTime,
		Value: p.cfg.VaguePeriods[period],
		Span:  Span{Start: idx, End: idx + len(period)},
	}
}

// extractDate resolves relative expressions against the injected reference
// time; it never consults a clock of its own. A weekday name means the
// next occurrence of that weekday, never today.
func (p *Pipeline) extractDate(text string, ref time.Time) *Slot {
	type hit struct {
		idx, length int
		value       string
	}
	var best *hit

	consider := func(at, length int, value string) {
		if at < 0 {
			return
		}
		if best == nil || at < best.idx || (at == best.idx && length > best.length) {
			best = &hit{idx: at, length: length, value: value}
		}
	}

	relatives := []struct {
		phrase string
		days   int
	}{
		{"apres demain", 2},
		{"demain", 1},
		{"aujourdhui", 0},
	}
	for _, rel := range relatives {
		at := phraseIndex(text, rel.phrase)
		consider(at, len(rel.phrase), ref.AddDate(0, 0, rel.days).Format("2006-01-02"))
	}

	for name, day := range weekdays {
		at := phraseIndex(text, name)
		if at < 0 {
			continue
		}
		delta := (int(day) - int(ref.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		consider(at, len(name), ref.AddDate(0, 0, delta).Format("2006-01-02"))
	}

	if loc := dayRe.FindStringSubmatchIndex(text); loc != nil {
		dayNum, _ := strconv.Atoi(text[loc[2]:loc[3]])
		month := months[text[loc[4]:loc[5]]]
		candidate := time.Date(ref.Year(), month, dayNum, 0, 0, 0, 0, ref.Location())
		if candidate.Before(ref) {
			candidate = candidate.AddDate(1, 0, 0)
		}
		consider(loc[0], loc[1]-loc[0], candidate.Format("2006-01-02"))
	}

	if best == nil {
		return nil
	}
	return &Slot{
		Name:  SlotDate,
		Value: best.value,
		Span:  Span{Start: best.idx, End: best.idx + best.length},
	}
}

// extractContact captures the name spoken after a calling verb and checks
// it against the injected known-contacts list. An unknown name is still
// returned, flagged unresolved, so the caller can ask for confirmation
// instead of silently dropping it.
func (p *Pipeline) extractContact(text string, _ time.Time) *Slot {
	if loc := contactRe.FindStringSubmatchIndex(text); loc != nil {
		candidate := strings.TrimSpace(text[loc[2]:loc[3]])
		candidate = cutAtContactStop(candidate)
		if candidate != "" {
			return &Slot{
				Name:       SlotContact,
				Value:      candidate,
				Span:       Span{Start: loc[2], End: loc[2] + len(candidate)},
				Unresolved: !p.isKnownContact(candidate),
			}
		}
	}

	for _, hint := range p.cfg.ContactHints {
		if at := phraseIndex(text, hint); at >= 0 {
			return &Slot{
				Name:       SlotContact,
				Value:      hint,
				Span:       Span{Start: at, End: at + len(hint)},
				Unresolved: !p.isKnownContact(hint),
			}
		}
	}
	return nil
}

// Words that end a spoken name: "appelle fatma demain a 10h" captures
// only "fatma".
var contactStops = map[string]bool{
	"demain": true, "aujourdhui": true, "a": true, "vers": true,
	"ce": true, "cet": true, "et": true, "pour": true, "que": true,
	"matin": true, "midi": true, "soir": true, "nuit": true,
	"le": true, "la": true, "les": true, "un": true, "une": true,
	"mon": true, "ma": true, "mes": true,
}

func cutAtContactStop(candidate string) string {
	var kept []string
	for _, tok := range strings.Fields(candidate) {
		if contactStops[tok] || isNumericToken(tok) {
			break
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func (p *Pipeline) isKnownContact(name string) bool {
	for _, known := range p.cfg.Contacts {
		if strings.EqualFold(strings.TrimSpace(known), name) {
			return true
		}
	}
	return false
}

func (p *Pipeline) extractMedication(text string, _ time.Time) *Slot {
	name, idx := "", -1
	for _, med := range p.cfg.Medications {
		at := phraseIndex(text, med)
		if at >= 0 && (idx < 0 || at < idx) {
			name, idx = med, at
		}
	}
	if idx >= 0 {
		return &Slot{Name: SlotMedication, Value: name, Span: Span{Start: idx, End: idx + len(name)}}
	}

	if loc := medRe.FindStringSubmatchIndex(text); loc != nil {
		captured := text[loc[2]:loc[3]]
		if !contactStops[captured] {
			return &Slot{Name: SlotMedication, Value: captured, Span: Span{Start: loc[2], End: loc[3]}}
		}
	}
	return nil
}

// extractDuration normalizes "pendant 10 minutes" / "dans 2 heures" to a
// minute count.
func (p *Pipeline) extractDuration(text string, _ time.Time) *Slot {
	loc := durRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil
	}
	n, _ := strconv.Atoi(text[loc[2]:loc[3]])
	if strings.HasPrefix(text[loc[4]:loc[5]], "heure") {
		n *= 60
	}
	return &Slot{
		Name:  SlotDuration,
		Value: strconv.Itoa(n),
		Span:  Span{Start: loc[0], End: loc[1]},
	}
}

func (p *Pipeline) extractMedia(text string, _ time.Time) *Slot {
	value, token, idx := "", "", -1
	for tok, canonical := range p.cfg.MediaNames {
		at := phraseIndex(text, tok)
		if at < 0 {
			continue
		}
		if idx < 0 || at < idx {
			value, token, idx = canonical, tok, at
		}
	}
	if idx < 0 {
		return nil
	}
	return &Slot{Name: SlotMedia, Value: value, Span: Span{Start: idx, End: idx + len(token)}}
}

func (p *Pipeline) extractCity(text string, _ time.Time) *Slot {
	for _, city := range p.cfg.Cities {
		if at := phraseIndex(text, city); at >= 0 {
			return &Slot{
				Name:  SlotCity,
				Value: capitalize(city),
				Span:  Span{Start: at, End: at + len(city)},
			}
		}
	}
	return nil
}

// extractSummary keeps whatever semantic content remains once trigger
// words, schedule words and grammatical glue are removed, to serve as a
// human-readable label. A doctor mention collapses to the canonical
// appointment summary.
func (p *Pipeline) extractSummary(text string, _ time.Time) *Slot {
	if text == "" {
		return nil
	}
	if phraseIndex(text, "docteur") >= 0 {
		return &Slot{Name: SlotText, Value: "rendez vous docteur", Span: Span{Start: 0, End: len(text)}}
	}

	drop := make(map[string]bool)
	for _, tok := range p.cfg.SummaryStopList {
		drop[tok] = true
	}
	for _, triggers := range p.cfg.Triggers {
		for _, t := range triggers {
			for _, tok := range strings.Fields(t.Phrase) {
				drop[tok] = true
			}
		}
	}
	for name := range weekdays {
		drop[name] = true
	}
	for name := range months {
		drop[name] = true
	}
	for phrase := range p.cfg.VaguePeriods {
		for _, tok := range strings.Fields(phrase) {
			drop[tok] = true
		}
	}

	var kept []string
	for _, tok := range strings.Fields(text) {
		if drop[tok] || isNumericToken(tok) || clockRe.MatchString(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return nil
	}
	return &Slot{Name: SlotText, Value: strings.Join(kept, " "), Span: Span{Start: 0, End: len(text)}}
}

// phraseIndex reports the byte offset of phrase in text when it appears
// as whole words, or -1.
func phraseIndex(text, phrase string) int {
	padded := " " + text + " "
	at := strings.Index(padded, " "+phrase+" ")
	if at < 0 {
		return -1
	}
	return at
}

func isNumericToken(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) && r != ':' {
			return false
		}
	}
	return len(tok) > 0
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
