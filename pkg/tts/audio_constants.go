package tts

import "time"

// Audio format of the speech payloads returned by the synthesis service.
const (
	// SampleRate is the audio sample rate in Hz.
	SampleRate = 24000
	// Channels is the number of audio channels (1 = mono).
	Channels = 1
	// BitDepth is the bit depth of the encoded payload samples.
	BitDepth = 16
	// BytesPerSample is the number of bytes per encoded sample.
	BytesPerSample = BitDepth / 8
	// FloatBytesPerSample is the number of bytes per sample fed to the device.
	FloatBytesPerSample = 4
)

// Format describes the sample rate and channel layout of a playback path.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat returns the format used by the speech service.
func DefaultFormat() Format {
	return Format{SampleRate: SampleRate, Channels: Channels}
}

// Validate reports ErrInvalidFormat for non-positive rates or channel counts.
func (f Format) Validate() error {
	if f.SampleRate < 1 || f.Channels < 1 {
		return ErrInvalidFormat
	}
	return nil
}

// BytesPerSecond returns the device byte rate for float32 samples.
func (f Format) BytesPerSecond() int {
	return f.SampleRate * f.Channels * FloatBytesPerSample
}

// Duration returns how long n device bytes take to play.
func (f Format) Duration(n int) time.Duration {
	bps := f.BytesPerSecond()
	if bps == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(bps)
}
