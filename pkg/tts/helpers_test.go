package tts

import (
	"context"
	"sync"
	"testing"
	"time"
)

// newTestAudioContext returns a mock context in the speech format.
func newTestAudioContext(t *testing.T) *MockAudioContext {
	t.Helper()

	ctx, err := NewMockAudioContext(DefaultFormat())
	if err != nil {
		t.Fatalf("Failed to create mock audio context: %v", err)
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

// silence returns a payload of d worth of zero samples at the default format.
func silence(d time.Duration) string {
	frames := int(d * SampleRate / time.Second)
	return encodePCM(make([]int16, frames)...)
}

// waitFor polls cond until it holds or a second elapses.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// fakeSynth is a Synthesizer with a canned result. When gate is set each
// call waits for it to close; ignoreCtx makes it keep waiting after the
// caller cancels.
type fakeSynth struct {
	mu        sync.Mutex
	calls     int
	payload   string
	err       error
	gate      chan struct{}
	ignoreCtx bool
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		if f.ignoreCtx {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return f.payload, f.err
}

func (f *fakeSynth) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// mapCache is an in-memory PayloadCache.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (m *mapCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *mapCache) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
