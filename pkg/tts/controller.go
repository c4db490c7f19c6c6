package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Synthesizer fetches speech for a text as a base64 PCM payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// PayloadCache keeps fetched payloads so replaying a text skips the fetch.
type PayloadCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithPayloadCache sets the cache consulted before fetching speech.
func WithPayloadCache(cache PayloadCache) ControllerOption {
	return func(c *Controller) {
		c.cache = cache
	}
}

// WithFormat overrides the payload format. It defaults to the audio
// context's rate and channel count.
func WithFormat(format Format) ControllerOption {
	return func(c *Controller) {
		c.format = format
	}
}

// Controller plays one text at a time. Toggle starts or stops playback,
// Stop always returns to idle. Fetches that complete after a Stop are
// discarded by generation.
type Controller struct {
	mu         sync.Mutex
	machine    *StateMachine
	synth      Synthesizer
	audio      AudioContextInterface
	cache      PayloadCache
	format     Format
	handle     *Handle
	cancel     context.CancelFunc
	generation uint64
	changes    chan State
	closed     bool
}

// NewController creates a controller that fetches speech with synth and
// plays it on audio. The audio context is not owned by the controller.
func NewController(synth Synthesizer, audio AudioContextInterface, opts ...ControllerOption) (*Controller, error) {
	if synth == nil {
		return nil, errors.New("synthesizer is required")
	}
	if audio == nil {
		return nil, ErrContextNotReady
	}

	c := &Controller{
		machine: NewStateMachine(),
		synth:   synth,
		audio:   audio,
		format:  Format{SampleRate: audio.SampleRate(), Channels: audio.ChannelCount()},
		changes: make(chan State, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.format.Validate(); err != nil {
		return nil, err
	}

	for _, s := range []State{StateIdle, StateLoading, StatePlaying} {
		state := s
		c.machine.OnEnter(state, func() { c.publish(state) })
	}

	return c, nil
}

// Toggle stops playback when playing, is ignored while loading, and
// otherwise fetches, decodes and plays text. It blocks until playback
// has started or failed. A failure leaves the controller idle and
// returns an error wrapping ErrAudioUnavailable.
func (c *Controller) Toggle(ctx context.Context, text string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}

	switch c.machine.Current() {
	case StatePlaying:
		c.stopLocked()
		c.mu.Unlock()
		return nil
	case StateLoading:
		c.mu.Unlock()
		log.Debug("Toggle ignored while loading")
		return nil
	}

	c.generation++
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.machine.Transition(StateLoading)
	c.mu.Unlock()
	defer cancel()

	buf, err := c.load(fetchCtx, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Debug("Discarding stale speech", "generation", gen, "current", c.generation)
		return nil
	}
	c.cancel = nil

	if err == nil {
		err = c.startLocked(buf)
	}
	if err != nil {
		c.machine.Transition(StateIdle)
		log.Error("Audio unavailable", "error", err)
		return fmt.Errorf("%w: %w", ErrAudioUnavailable, err)
	}
	return nil
}

func (c *Controller) load(ctx context.Context, text string) (*Buffer, error) {
	key := CacheKey(text)

	var payload string
	if c.cache != nil {
		if data, ok := c.cache.Get(key); ok {
			log.Debug("Speech cache hit", "key", key[:12])
			payload = string(data)
		}
	}

	fetched := false
	if payload == "" {
		p, err := c.synth.Synthesize(ctx, text)
		if err != nil {
			return nil, err
		}
		payload = p
		fetched = true
	}

	buf, err := Decode(payload, c.format.SampleRate, c.format.Channels)
	if err != nil {
		return nil, err
	}

	if fetched && c.cache != nil {
		if err := c.cache.Put(key, []byte(payload)); err != nil {
			log.Warn("Failed to cache speech", "error", err)
		}
	}
	return buf, nil
}

func (c *Controller) startLocked(buf *Buffer) error {
	// at most one live handle
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}

	h, err := NewHandle(c.audio, buf)
	if err != nil {
		return err
	}
	if err := h.Start(); err != nil {
		return err
	}

	c.handle = h
	c.machine.Transition(StatePlaying)
	go c.watch(h)
	return nil
}

// watch returns the controller to idle when h finishes on its own.
func (c *Controller) watch(h *Handle) {
	<-h.Done()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle != h {
		return
	}
	c.handle = nil
	c.machine.Transition(StateIdle)
}

// Stop terminates playback and abandons any fetch in flight. It is a
// no-op when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.machine.Current() == StateIdle && c.handle == nil && c.cancel == nil {
		return
	}

	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.handle != nil {
		c.handle.Stop()
		c.handle = nil
	}
	c.machine.Transition(StateIdle)
}

// Close stops playback and rejects further toggles. The change channel
// is closed.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.stopLocked()
	c.closed = true
	close(c.changes)
	return nil
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.Current()
}

// IsPlaying reports whether a handle is playing.
func (c *Controller) IsPlaying() bool {
	return c.State() == StatePlaying
}

// IsLoading reports whether speech is being fetched.
func (c *Controller) IsLoading() bool {
	return c.State() == StateLoading
}

// Changes delivers state transitions. Delivery is best effort: when the
// buffer is full a transition is dropped, and receivers should read
// State for the authoritative value.
func (c *Controller) Changes() <-chan State {
	return c.changes
}

func (c *Controller) publish(s State) {
	if c.closed {
		return
	}
	select {
	case c.changes <- s:
	default:
		log.Debug("State change dropped", "state", s)
	}
}

// CacheKey returns the payload cache key for a text.
func CacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "speech:" + hex.EncodeToString(sum[:])
}
