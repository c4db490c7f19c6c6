package tts

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"
	"time"
	"unicode"
)

// Buffer is a decoded, planar audio buffer. Every channel holds the same
// number of frames and every sample lies in [-1.0, 1.0].
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// Frames returns the number of frames per channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// ChannelCount returns the number of channels.
func (b *Buffer) ChannelCount() int {
	if b == nil {
		return 0
	}
	return len(b.Channels)
}

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// Format returns the rate and channel layout of the buffer.
func (b *Buffer) Format() Format {
	return Format{SampleRate: b.SampleRate, Channels: b.ChannelCount()}
}

// Interleaved returns the samples re-interleaved frame by frame.
func (b *Buffer) Interleaved() []float32 {
	frames, channels := b.Frames(), b.ChannelCount()
	out := make([]float32, frames*channels)
	for ch := 0; ch < channels; ch++ {
		for i, s := range b.Channels[ch] {
			out[i*channels+ch] = s
		}
	}
	return out
}

// Float32LE returns the interleaved samples encoded as little-endian
// float32, the layout the audio device is opened with.
func (b *Buffer) Float32LE() []byte {
	samples := b.Interleaved()
	out := make([]byte, len(samples)*FloatBytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*FloatBytesPerSample:], math.Float32bits(s))
	}
	return out
}

// Int16 returns the interleaved samples scaled back to 16-bit integers.
func (b *Buffer) Int16() []int {
	samples := b.Interleaved()
	out := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(float64(s) * 32768.0)
		if v > math.MaxInt16 {
			v = math.MaxInt16
		} else if v < math.MinInt16 {
			v = math.MinInt16
		}
		out[i] = int(v)
	}
	return out
}

// Decode turns a base64 payload of interleaved 16-bit little-endian PCM
// into a playable buffer. Each sample s becomes s/32768. A trailing odd
// byte and any samples that do not fill a whole frame are dropped. An
// empty payload yields an empty, valid buffer.
func Decode(payload string, sampleRate, channels int) (*Buffer, error) {
	if err := (Format{SampleRate: sampleRate, Channels: channels}).Validate(); err != nil {
		return nil, err
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	totalSamples := len(raw) / BytesPerSample
	frameCount := totalSamples / channels

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float32, frameCount)
	}

	for frame := 0; frame < frameCount; frame++ {
		for ch := 0; ch < channels; ch++ {
			off := (frame*channels + ch) * BytesPerSample
			s := int16(binary.LittleEndian.Uint16(raw[off : off+BytesPerSample]))
			buf.Channels[ch][frame] = float32(s) / 32768.0
		}
	}

	return buf, nil
}

// decodeBase64 accepts padded or unpadded standard base64 and ignores
// embedded whitespace.
func decodeBase64(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	if strings.HasSuffix(clean, "=") || len(clean)%4 == 0 {
		return base64.StdEncoding.DecodeString(clean)
	}
	return base64.RawStdEncoding.DecodeString(clean)
}
