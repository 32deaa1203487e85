package utils

import (
	"crypto/rand"
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateAudioFile(file *multipart.FileHeader) error
}

type utils struct {
	maxFileSize int64
}

// Uploaded recordings are short spoken commands; anything bigger than
// this is not one.
const maxAudioSize = 15 * 1024 * 1024

var (
	ErrNoFile           = errors.New("no file uploaded")
	ErrFileTooLarge     = errors.New("file size exceeds limit")
	ErrUnsupportedAudio = errors.New("uploaded file is not audio")
)

var allowedAudioExtensions = map[string]bool{
	".wav":  true,
	".webm": true,
	".ogg":  true,
	".mp3":  true,
	".m4a":  true,
}

func New() IUtils {
	return &utils{
		maxFileSize: maxAudioSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return ErrNoFile
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAudioExtensions[ext] {
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "audio/") {
			return ErrUnsupportedAudio
		}
	}

	return nil
}
