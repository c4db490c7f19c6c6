package tts

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// mockTick is how often a mock player advances its simulated clock.
const mockTick = 10 * time.Millisecond

// MockAudioContext implements AudioContextInterface without a device.
// Players finish after the wall-clock time their data would take to play.
type MockAudioContext struct {
	mu      sync.Mutex
	ready   bool
	players []*MockAudioPlayer
	format  Format

	// Test helpers
	PlayersCreated int
	PlayersClosed  int
}

// NewMockAudioContext creates a new mock audio context
func NewMockAudioContext(format Format) (*MockAudioContext, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	log.Debug("Creating mock audio context", "format", format)
	return &MockAudioContext{
		ready:  true,
		format: format,
	}, nil
}

// NewPlayer consumes r and returns a simulated player for its bytes.
func (mac *MockAudioContext) NewPlayer(r io.Reader) (AudioPlayerInterface, error) {
	mac.mu.Lock()
	defer mac.mu.Unlock()

	if !mac.ready {
		return nil, ErrContextNotReady
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	player := &MockAudioPlayer{
		context:  mac,
		size:     len(data),
		duration: mac.format.Duration(len(data)),
		volume:   1.0,
	}

	mac.players = append(mac.players, player)
	mac.PlayersCreated++

	log.Debug("Created mock audio player",
		"data_size", len(data),
		"duration", player.duration,
		"players_created", mac.PlayersCreated)

	return player, nil
}

// Close closes the context and every player it created.
func (mac *MockAudioContext) Close() error {
	mac.mu.Lock()
	players := mac.players
	mac.players = nil
	mac.ready = false
	mac.mu.Unlock()

	for _, player := range players {
		_ = player.Close()
	}
	log.Debug("Mock audio context closed")
	return nil
}

// IsReady returns whether the context is ready
func (mac *MockAudioContext) IsReady() bool {
	mac.mu.Lock()
	defer mac.mu.Unlock()
	return mac.ready
}

// SampleRate returns the sample rate
func (mac *MockAudioContext) SampleRate() int {
	return mac.format.SampleRate
}

// ChannelCount returns the number of channels
func (mac *MockAudioContext) ChannelCount() int {
	return mac.format.Channels
}

// Created returns the number of players created.
func (mac *MockAudioContext) Created() int {
	mac.mu.Lock()
	defer mac.mu.Unlock()
	return mac.PlayersCreated
}

// Closed returns the number of players closed.
func (mac *MockAudioContext) Closed() int {
	mac.mu.Lock()
	defer mac.mu.Unlock()
	return mac.PlayersClosed
}

// Active returns the number of players that are currently playing.
func (mac *MockAudioContext) Active() int {
	mac.mu.Lock()
	defer mac.mu.Unlock()
	n := 0
	for _, p := range mac.players {
		if p.IsPlaying() {
			n++
		}
	}
	return n
}

// MockAudioPlayer implements AudioPlayerInterface for testing
type MockAudioPlayer struct {
	context  *MockAudioContext
	size     int
	duration time.Duration
	mu       sync.Mutex

	playing atomic.Bool
	closed  atomic.Bool
	volume  float64

	elapsed time.Duration

	// Test helpers
	PlayCount  int
	PauseCount int
}

// Play starts or resumes simulated playback.
func (m *MockAudioPlayer) Play() {
	if m.closed.Load() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing.Load() {
		return
	}
	m.playing.Store(true)
	m.PlayCount++
	go m.simulatePlayback()
	log.Debug("Mock player started", "play_count", m.PlayCount)
}

func (m *MockAudioPlayer) simulatePlayback() {
	ticker := time.NewTicker(mockTick)
	defer ticker.Stop()

	last := time.Now()
	for range ticker.C {
		if !m.playing.Load() || m.closed.Load() {
			return
		}

		m.mu.Lock()
		now := time.Now()
		m.elapsed += now.Sub(last)
		last = now
		done := m.elapsed >= m.duration
		if done {
			m.playing.Store(false)
		}
		m.mu.Unlock()

		if done {
			log.Debug("Mock playback completed", "duration", m.duration)
			return
		}
	}
}

// Pause pauses playback
func (m *MockAudioPlayer) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing.Load() {
		m.playing.Store(false)
		m.PauseCount++
	}
}

// IsPlaying returns whether audio is currently playing
func (m *MockAudioPlayer) IsPlaying() bool {
	return m.playing.Load()
}

// Close closes the player
func (m *MockAudioPlayer) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		m.playing.Store(false)
		m.context.mu.Lock()
		m.context.PlayersClosed++
		m.context.mu.Unlock()
		log.Debug("Mock player closed")
	}
	return nil
}

// SetVolume sets the playback volume (0.0 to 1.0)
func (m *MockAudioPlayer) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
}

// Volume returns the current volume
func (m *MockAudioPlayer) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Size returns the number of bytes handed to the player.
func (m *MockAudioPlayer) Size() int {
	return m.size
}
