package tts

import "io"

// AudioContextInterface is an open audio device. Production code uses an
// oto-backed context; tests and headless machines use the mock.
type AudioContextInterface interface {
	// NewPlayer creates a player that reads float32 little-endian samples from r.
	NewPlayer(r io.Reader) (AudioPlayerInterface, error)

	// Close releases the device.
	Close() error

	// IsReady returns whether the context can create players.
	IsReady() bool

	// SampleRate returns the sample rate the device was opened with.
	SampleRate() int

	// ChannelCount returns the number of channels.
	ChannelCount() int
}

// AudioPlayerInterface is a single stream on an audio context.
type AudioPlayerInterface interface {
	// Play starts or resumes playback.
	Play()

	// Pause pauses playback.
	Pause()

	// IsPlaying reports whether audio is still being played. It turns
	// false once the stream is exhausted.
	IsPlaying() bool

	// Close stops the player and releases it.
	Close() error

	// SetVolume sets the playback volume (0.0 to 1.0).
	SetVolume(volume float64)

	// Volume returns the current volume.
	Volume() float64
}

// AudioContextType selects the audio context implementation.
type AudioContextType int

const (
	// AudioContextProduction uses the sound card via oto.
	AudioContextProduction AudioContextType = iota
	// AudioContextMock simulates playback timing without a device.
	AudioContextMock
	// AudioContextAuto tries the sound card and falls back to the mock.
	AudioContextAuto
)

func (t AudioContextType) String() string {
	switch t {
	case AudioContextProduction:
		return "production"
	case AudioContextMock:
		return "mock"
	case AudioContextAuto:
		return "auto"
	default:
		return "unknown"
	}
}
