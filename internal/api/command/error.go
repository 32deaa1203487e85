package command

import "github.com/nassim127/seniorvoice-ai/pkg/response"

var (
	ErrInvalidAudioFile    = response.NewError(400, "invalid audio file")
	ErrAudioFileTooLarge   = response.NewError(400, "audio file too large")
	ErrUnsupportedFormat   = response.NewError(400, "unsupported audio format")
	ErrTranscriptionFailed = response.NewError(500, "failed to transcribe audio")
	ErrNoPendingAction     = response.NewError(404, "no pending action to confirm")
	ErrContactNotFound     = response.NewError(404, "contact not found")
	ErrContactExists       = response.NewError(409, "contact already exists")
)
