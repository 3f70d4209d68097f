package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFile      = errors.New("the file could not be read or is not a supported format")
	ErrFileAccess       = fmt.Errorf("%w: file access failed", ErrInvalidFile)
	ErrNoAudioTrack     = errors.New("no audio track found in video")
	ErrExtractionFailed = errors.New("audio extraction failed")
	ErrNetwork          = errors.New("network error")
	ErrInvalidResponse  = errors.New("the server returned an invalid response")
	ErrResponseTooLarge = errors.New("response body exceeds size limit")

	// ErrInvalidRequest marks caller input rejected before anything is uploaded:
	// a blank model, or an unsupported output or subtitle format.
	ErrInvalidRequest = errors.New("invalid transcription request")
)

// APIError is a non-2xx answer from the transcription service.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("speechall API error (%d): %s", e.StatusCode, e.Message)
}

// KindError pairs a taxonomy sentinel with the error that caused it. Both stay
// reachable through errors.Is and errors.As.
type KindError struct {
	Kind  error
	Cause error
}

func (e *KindError) Error() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Cause.Error()
}

func (e *KindError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// WrapKind tags cause with kind. A nil cause yields the bare kind.
func WrapKind(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return &KindError{Kind: kind, Cause: cause}
}
