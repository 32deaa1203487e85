package command

import (
	"mime/multipart"
	"time"

	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
)

type ProcessCommandRequest struct {
	AudioFile *multipart.FileHeader `json:"audio_file" validate:"required"`
}

type InterpretRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

type ConfirmRequest struct {
	Accept bool `json:"accept"`
}

// CommandResponse is the envelope returned for both audio and text
// commands. Action carries the structured record; NeedsConfirmation is
// set when the pipeline was uncertain enough that the UI should read the
// interpretation back to the speaker before executing it.
type CommandResponse struct {
	Transcript        string            `json:"transcript"`
	Language          string            `json:"language,omitempty"`
	SpeechConfidence  float64           `json:"speech_confidence,omitempty"`
	Action            *nlp.ActionRecord `json:"result"`
	NeedsConfirmation bool              `json:"needs_confirmation"`
	AudioURL          string            `json:"audio_url,omitempty"`
}

type HistoryResponse struct {
	Commands []CommandHistoryItem `json:"commands"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	Limit    int                  `json:"limit"`
}

type CommandHistoryItem struct {
	ID               string            `json:"id"`
	RawText          string            `json:"raw_text"`
	Action           string            `json:"action"`
	Slots            map[string]string `json:"slots"`
	Confidence       float64           `json:"confidence"`
	SpeechConfidence float64           `json:"speech_confidence"`
	Language         string            `json:"language,omitempty"`
	AudioURL         string            `json:"audio_url,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"required,min=3,max=20"`
}

type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
