//go:build !nocgo
// +build !nocgo

package tts

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

const otoReadyTimeout = 5 * time.Second

// ProductionAudioContext plays through the sound card with oto.
type ProductionAudioContext struct {
	context *oto.Context
	format  Format
	mu      sync.Mutex
	ready   bool
}

// NewProductionAudioContext opens the sound card. oto permits a single
// context per process, so callers create it once and share it.
func NewProductionAudioContext(format Format) (*ProductionAudioContext, error) {
	platform := DetectPlatform()
	attempts, delay := retryPolicy(platform)

	var lastErr error
	for i := range attempts {
		if i > 0 {
			log.Debug("Retrying audio device", "attempt", i+1, "of", attempts)
			time.Sleep(delay)
		}

		ctx, err := openOto(format, bufferSize(platform))
		if err != nil {
			lastErr = err
			continue
		}
		log.Info("Audio device opened", "platform", platform.OS, "audio", platform.AudioSubsystem)
		return &ProductionAudioContext{context: ctx, format: format, ready: true}, nil
	}
	return nil, fmt.Errorf("failed to open audio device after %d attempts: %w", attempts, lastErr)
}

// retryPolicy gives sound servers that start lazily a few more tries.
func retryPolicy(p PlatformInfo) (int, time.Duration) {
	switch {
	case p.OS == "darwin":
		return 3, 200 * time.Millisecond
	case p.OS == "windows":
		return 2, 150 * time.Millisecond
	case p.AudioSubsystem == AudioSubsystemPulseAudio:
		return 2, 100 * time.Millisecond
	default:
		return 1, 0
	}
}

func bufferSize(p PlatformInfo) time.Duration {
	switch p.OS {
	case "darwin":
		return 100 * time.Millisecond
	case "windows":
		return 80 * time.Millisecond
	default:
		return 50 * time.Millisecond
	}
}

func openOto(format Format, buffer time.Duration) (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-ready:
		return ctx, nil
	case <-time.After(otoReadyTimeout):
		return nil, fmt.Errorf("audio device not ready after %s", otoReadyTimeout)
	}
}

// NewPlayer creates a stream reading float32 samples from r.
func (pac *ProductionAudioContext) NewPlayer(r io.Reader) (AudioPlayerInterface, error) {
	pac.mu.Lock()
	defer pac.mu.Unlock()

	if !pac.ready {
		return nil, ErrContextNotReady
	}
	return &otoPlayer{player: pac.context.NewPlayer(r)}, nil
}

// Close marks the context unusable. oto v3 contexts cannot be closed and
// are released with the process.
func (pac *ProductionAudioContext) Close() error {
	pac.mu.Lock()
	defer pac.mu.Unlock()

	pac.ready = false
	pac.context = nil
	return nil
}

func (pac *ProductionAudioContext) IsReady() bool {
	pac.mu.Lock()
	defer pac.mu.Unlock()
	return pac.ready
}

func (pac *ProductionAudioContext) SampleRate() int {
	return pac.format.SampleRate
}

func (pac *ProductionAudioContext) ChannelCount() int {
	return pac.format.Channels
}

// otoPlayer adapts *oto.Player to AudioPlayerInterface.
type otoPlayer struct {
	player *oto.Player
}

func (p *otoPlayer) Play()           { p.player.Play() }
func (p *otoPlayer) Pause()          { p.player.Pause() }
func (p *otoPlayer) IsPlaying() bool { return p.player.IsPlaying() }
func (p *otoPlayer) Close() error    { return p.player.Close() }

func (p *otoPlayer) SetVolume(volume float64) {
	p.player.SetVolume(volume)
}

func (p *otoPlayer) Volume() float64 {
	return p.player.Volume()
}
