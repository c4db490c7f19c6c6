package tts

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every *DecodeError.
	ErrDecode = errors.New("malformed audio payload")
	// ErrInvalidFormat is returned for a non-positive sample rate or channel count.
	ErrInvalidFormat = errors.New("invalid audio format")
	// ErrAudioUnavailable is returned by Toggle when speech could not be fetched or decoded.
	ErrAudioUnavailable = errors.New("audio unavailable")
	// ErrHandleTerminated is returned when starting a handle that already finished.
	ErrHandleTerminated = errors.New("playback handle terminated")
	// ErrHandleStarted is returned when starting a handle twice.
	ErrHandleStarted = errors.New("playback handle already started")
	// ErrFormatMismatch is returned when a buffer does not match the device format.
	ErrFormatMismatch = errors.New("buffer format does not match audio context")
	// ErrContextNotReady is returned when the audio device is closed or not initialized.
	ErrContextNotReady = errors.New("audio context not ready")
	// ErrControllerClosed is returned by Toggle after Close.
	ErrControllerClosed = errors.New("playback controller closed")
)

// DecodeError reports a payload that is not valid base64.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) hold for any DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
