package audio

import (
	"context"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// Result is what the speech boundary hands to the NLP pipeline: a
// finalized transcript with a confidence in [0,1]. The pipeline treats
// the engine as a black box and never sees audio.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
}

type ITranscriber interface {
	TranscribeCommand(ctx context.Context, filePath string) (*Result, error)
}

type transcriber struct {
	client  *openai.Client
	log     *logrus.Logger
	fillers []string
}

// Elderly speakers mix Tunisian Arabic and French mid-sentence, so
// auto-detection alone picks the wrong language often enough that trying
// both and scoring the candidates wins.
var languageAttempts = []string{"", "fr", "ar"}

const whisperPrompt = "Senior tunisien, arabe dialectal tunisien et francais."

func NewTranscriber(log *logrus.Logger, fillers []string) ITranscriber {
	return &transcriber{
		client:  openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		log:     log,
		fillers: fillers,
	}
}

func (t *transcriber) TranscribeCommand(ctx context.Context, filePath string) (*Result, error) {
	candidates := make([]Candidate, 0, len(languageAttempts))

	for _, lang := range languageAttempts {
		req := openai.AudioRequest{
			Model:       openai.Whisper1,
			FilePath:    filePath,
			Language:    lang,
			Prompt:      whisperPrompt,
			Temperature: 0,
			Format:      openai.AudioResponseFormatVerboseJSON,
		}

		resp, err := t.client.CreateTranscription(ctx, req)
		if err != nil {
			t.log.WithFields(logrus.Fields{
				"language": lang,
				"error":    err.Error(),
			}).Warn("Transcription attempt failed")
			continue
		}

		candidate := Candidate{
			Text:     resp.Text,
			Language: resp.Language,
		}
		for _, seg := range resp.Segments {
			candidate.Segments = append(candidate.Segments, SegmentStats{
				AvgLogprob:       seg.AvgLogprob,
				NoSpeechProb:     seg.NoSpeechProb,
				CompressionRatio: seg.CompressionRatio,
			})
		}
		candidates = append(candidates, candidate)
	}

	if len(candidates) == 0 {
		return nil, ErrNoTranscription
	}

	best := SelectBest(candidates, t.fillers)
	return best.toResult(), nil
}
