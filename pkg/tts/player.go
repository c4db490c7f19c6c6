package tts

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// pollInterval is how often a running handle checks its player for completion.
const pollInterval = 20 * time.Millisecond

// Handle is a single playback of a decoded buffer. It is started once,
// terminates on natural completion or Stop, and can never be restarted.
type Handle struct {
	mu         sync.Mutex
	player     AudioPlayerInterface
	buffer     *Buffer
	started    bool
	terminated bool
	done       chan struct{}
	stop       chan struct{}
	startedAt  time.Time
}

// NewHandle prepares a player for buf on the given context. The buffer
// must match the context's sample rate and channel count.
func NewHandle(ac AudioContextInterface, buf *Buffer) (*Handle, error) {
	if ac == nil || !ac.IsReady() {
		return nil, ErrContextNotReady
	}
	if buf.SampleRate != ac.SampleRate() || buf.ChannelCount() != ac.ChannelCount() {
		return nil, fmt.Errorf("%w: buffer %dHz/%dch, device %dHz/%dch", ErrFormatMismatch,
			buf.SampleRate, buf.ChannelCount(), ac.SampleRate(), ac.ChannelCount())
	}

	h := &Handle{
		buffer: buf,
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}

	if buf.Frames() == 0 {
		return h, nil
	}

	player, err := ac.NewPlayer(bytes.NewReader(buf.Float32LE()))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	h.player = player
	return h, nil
}

// Start begins playback. An empty buffer completes immediately.
func (h *Handle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.terminated {
		return ErrHandleTerminated
	}
	if h.started {
		return ErrHandleStarted
	}
	h.started = true
	h.startedAt = time.Now()

	if h.player == nil {
		h.terminateLocked()
		return nil
	}

	h.player.Play()
	go h.monitor()

	log.Debug("Playback started", "frames", h.buffer.Frames(), "duration", h.buffer.Duration())
	return nil
}

func (h *Handle) monitor() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if h.player.IsPlaying() {
				continue
			}
			h.mu.Lock()
			if !h.terminated {
				log.Debug("Playback completed", "elapsed", time.Since(h.startedAt))
				h.terminateLocked()
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop halts playback. Stopping a terminated handle is a no-op.
func (h *Handle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.terminated {
		return
	}
	if h.player != nil {
		h.player.Pause()
	}
	h.terminateLocked()
	log.Debug("Playback stopped")
}

func (h *Handle) terminateLocked() {
	h.terminated = true
	close(h.stop)
	if h.player != nil {
		if err := h.player.Close(); err != nil {
			log.Warn("Failed to close player", "error", err)
		}
	}
	close(h.done)
}

// Done is closed when the handle terminates for any reason.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Terminated reports whether the handle has finished.
func (h *Handle) Terminated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terminated
}

// Duration returns the length of the buffer being played.
func (h *Handle) Duration() time.Duration {
	return h.buffer.Duration()
}
