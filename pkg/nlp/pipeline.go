package nlp

import (
	"sync"
	"time"
)

// Pipeline chains normalization, classification, slot extraction and
// composition over a single transcript. It holds no mutable state, so one
// instance serves any number of concurrent requests.
type Pipeline struct {
	cfg *Config
}

func New(cfg *Config) IPipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pipeline{cfg: cfg}
}

// Process runs the whole chain. The classifier and the extractors are
// independent of each other, so they run concurrently over the same
// normalized text; composition waits for all of them before producing the
// record. ref is the reference time relative dates resolve against.
func (p *Pipeline) Process(rawText string, ref time.Time) *ActionRecord {
	text := p.Normalize(rawText)

	extractors := p.extractors()
	results := make([]*Slot, len(extractors))

	var (
		wg         sync.WaitGroup
		intent     Intent
		confidence float64
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		intent, confidence = p.Classify(text)
	}()

	for i, extract := range extractors {
		wg.Add(1)
		go func(i int, extract extractorFunc) {
			defer wg.Done()
			results[i] = extract(text, ref)
		}(i, extract)
	}
	wg.Wait()

	slots := make([]Slot, 0, len(results))
	for _, s := range results {
		if s != nil {
			slots = append(slots, *s)
		}
	}

	return Compose(intent, confidence, slots, rawText, ref)
}
