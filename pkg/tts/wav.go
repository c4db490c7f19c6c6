package tts

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavPCM is the WAVE format tag for integer PCM.
const wavPCM = 1

// WriteWAV encodes buf as a 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, buf *Buffer) error {
	if buf == nil || buf.ChannelCount() == 0 {
		return ErrInvalidFormat
	}

	enc := wav.NewEncoder(w, buf.SampleRate, BitDepth, buf.ChannelCount(), wavPCM)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: buf.ChannelCount(),
			SampleRate:  buf.SampleRate,
		},
		Data:           buf.Int16(),
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("failed to write wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}
