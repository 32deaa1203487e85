package entity

import (
	"time"
)

type CommandRecord struct {
	ID               string            `json:"id"`
	DeviceID         string            `json:"device_id"`
	RawText          string            `json:"raw_text"`
	Action           string            `json:"action"`
	Slots            map[string]string `json:"slots"`
	Confidence       float64           `json:"confidence"`
	SpeechConfidence float64           `json:"speech_confidence"`
	Language         string            `json:"language"`
	AudioURL         string            `json:"audio_url"`
	CreatedAt        time.Time         `json:"created_at"`
}

// PendingAction is a low-confidence or ambiguous action parked in the
// session store until the speaker confirms or rejects it.
type PendingAction struct {
	DeviceID         string    `json:"device_id"`
	Record           string    `json:"record"`
	AudioURL         string    `json:"audio_url"`
	Language         string    `json:"language"`
	SpeechConfidence float64   `json:"speech_confidence"`
	CreatedAt        time.Time `json:"created_at"`
}
