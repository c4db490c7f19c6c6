package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/pkg/tts"
)

// setConfig overrides a viper key for the duration of a test.
func setConfig(t *testing.T, key string, value any) {
	t.Helper()
	old := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, old) })
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"auto", false},
		{"dark", false},
		{"notty", false},
		{filepath.Join(t.TempDir(), "missing.json"), true},
	}
	for _, tt := range tests {
		if err := validateStyle(tt.style); (err != nil) != tt.wantErr {
			t.Errorf("validateStyle(%q) = %v", tt.style, err)
		}
	}
}

func TestValidateAudioConfig(t *testing.T) {
	if err := validateAudioConfig(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	tests := []struct {
		key     string
		value   int
		wantErr bool
	}{
		{"audio.sample_rate", 24000, false},
		{"audio.sample_rate", 48000, true},
		{"audio.channels", 1, false},
		{"audio.channels", 2, true},
		{"audio.cache_mb", 0, false},
		{"audio.cache_mb", -1, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s=%d", tt.key, tt.value), func(t *testing.T) {
			setConfig(t, tt.key, tt.value)
			if err := validateAudioConfig(); (err != nil) != tt.wantErr {
				t.Errorf("validateAudioConfig() with %s=%d = %v", tt.key, tt.value, err)
			}
		})
	}
}

func TestEnsureConfigFile(t *testing.T) {
	old := configFile
	t.Cleanup(func() { configFile = old })

	configFile = filepath.Join(t.TempDir(), "nested", "oracao.yml")
	if err := ensureConfigFile(); err != nil {
		t.Fatalf("ensureConfigFile failed: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if v.GetInt("audio.cache_mb") != 64 || v.GetString("gemini.voice") != "Kore" || v.IsSet("audio.sample_rate") {
		t.Errorf("unexpected defaults: %v", v.AllSettings())
	}

	// an existing file is left alone
	if err := os.WriteFile(configFile, []byte("width: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := ensureConfigFile(); err != nil {
		t.Fatal(err)
	}
	if b, _ := os.ReadFile(configFile); string(b) != "width: 42\n" {
		t.Errorf("existing config was overwritten: %q", b)
	}

	configFile = filepath.Join(t.TempDir(), "oracao.toml")
	if err := ensureConfigFile(); err == nil {
		t.Error("Expected unsupported extension error")
	}
}

func TestGeminiConfig(t *testing.T) {
	setConfig(t, "gemini.api_key", "")
	setConfig(t, "gemini.voice", "Puck")
	setConfig(t, "gemini.requests_per_minute", 5)
	setConfig(t, "gemini.timeout", "15s")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("API_KEY", "legacy")

	cfg := geminiConfig()
	if cfg.APIKey != "from-env" {
		t.Errorf("Expected env key, got %q", cfg.APIKey)
	}
	if cfg.Voice != "Puck" || cfg.RequestsPerMinute != 5 || cfg.Timeout != 15*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.TextModel != gemini.DefaultConfig().TextModel {
		t.Errorf("Expected default text model, got %q", cfg.TextModel)
	}

	setConfig(t, "gemini.api_key", "  from-file ")
	if k := apiKey(); k != "from-file" {
		t.Errorf("config key should win, got %q", k)
	}

	setConfig(t, "gemini.api_key", "")
	t.Setenv("GEMINI_API_KEY", "")
	if k := apiKey(); k != "legacy" {
		t.Errorf("Expected API_KEY fallback, got %q", k)
	}
}

func TestListPrayers(t *testing.T) {
	c := catalog.Default()

	var buf bytes.Buffer
	if err := listPrayers(&buf, c, ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, cat := range c.Categories() {
		if !strings.Contains(out, cat) {
			t.Errorf("missing category %q", cat)
		}
	}
	if got := strings.Count(out, "\n  "); got != len(c.Prayers()) {
		t.Errorf("Expected %d prayers listed, got %d", len(c.Prayers()), got)
	}

	buf.Reset()
	if err := listPrayers(&buf, c, "ave maria"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ave-maria") {
		t.Errorf("search should find ave-maria:\n%s", buf.String())
	}

	buf.Reset()
	if err := listPrayers(&buf, c, "xyzzyxyzzy"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No prayer matches") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestListRosaries(t *testing.T) {
	var buf bytes.Buffer
	if err := listRosaries(&buf, catalog.Default()); err != nil {
		t.Fatal(err)
	}
	for _, r := range catalog.Default().Rosaries() {
		if !strings.Contains(buf.String(), r.ID) {
			t.Errorf("missing rosary %s", r.ID)
		}
	}
}

func TestWriteJournal(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	if err := writeJournal(&buf, nil, store.Stats{}, now); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Nenhuma reflexão") {
		t.Errorf("unexpected empty journal output %q", buf.String())
	}

	entries := []journal.Entry{
		{ID: "b", Date: "19/10/2026", Title: "Gratidão", Content: "Obrigado", LinkedPrayerID: "pai-nosso"},
		{ID: "a", Date: "12/10/2026", Title: journal.DefaultTitle, Content: "Paz"},
	}
	buf.Reset()
	if err := writeJournal(&buf, entries, store.Stats{Size: 2048}, now); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Gratidão", "↳ pai-nosso", journal.DefaultTitle, "2 entries", "2.0 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("journal output is missing %q:\n%s", want, out)
		}
	}
}

func TestWriteIcon(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G'}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	path := filepath.Join(t.TempDir(), "icon.png")

	var buf bytes.Buffer
	if err := writeIcon(&buf, gemini.AppIcon, uri, path); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Expected %v, got %v", data, got)
	}
	if !strings.Contains(buf.String(), "image/png") {
		t.Errorf("unexpected output %q", buf.String())
	}

	if err := writeIcon(&buf, gemini.AppIcon, "not a uri", path); err == nil {
		t.Error("Expected invalid data uri error")
	}
}

type fakeSynth struct {
	payload string
	err     error
}

func (f fakeSynth) Synthesize(context.Context, string) (string, error) {
	return f.payload, f.err
}

// silence returns a base64 payload of d of 16-bit mono silence.
func silence(d time.Duration) string {
	n := int(d.Seconds()*tts.SampleRate) * tts.BytesPerSample
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func TestSaveSpeech(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prayer.wav")

	var buf bytes.Buffer
	if err := saveSpeech(context.Background(), &buf, fakeSynth{payload: silence(500 * time.Millisecond)}, "Amém", path); err != nil {
		t.Fatalf("saveSpeech failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 44 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Fatalf("not a wav file: % x", b[:min(len(b), 16)])
	}
	if !strings.Contains(buf.String(), "500ms") {
		t.Errorf("Expected duration in output, got %q", buf.String())
	}

	// the payload format never follows the config
	setConfig(t, "audio.sample_rate", 48000)
	setConfig(t, "audio.channels", 2)
	buf.Reset()
	if err := saveSpeech(context.Background(), &buf, fakeSynth{payload: silence(500 * time.Millisecond)}, "Amém", path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "500ms") {
		t.Errorf("Expected the payload read at 24kHz mono, got %q", buf.String())
	}

	failure := errors.New("offline")
	err = saveSpeech(context.Background(), &buf, fakeSynth{err: failure}, "Amém", path)
	if !errors.Is(err, tts.ErrAudioUnavailable) || !errors.Is(err, failure) {
		t.Errorf("Expected wrapped failure, got %v", err)
	}
}

func TestSpeakWaitsForPlayback(t *testing.T) {
	device, err := tts.NewMockAudioContext(tts.DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = device.Close() })

	c, err := tts.NewController(fakeSynth{payload: silence(50 * time.Millisecond)}, device)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })

	start := time.Now()
	if err := speak(context.Background(), c, "Amém"); err != nil {
		t.Fatalf("speak failed: %v", err)
	}
	if c.State() != tts.StateIdle {
		t.Errorf("Expected idle, got %s", c.State())
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("speak returned before playback ended (%s)", elapsed)
	}
}

func TestSpeakStopsOnCancel(t *testing.T) {
	device, err := tts.NewMockAudioContext(tts.DefaultFormat())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = device.Close() })

	c, err := tts.NewController(fakeSynth{payload: silence(10 * time.Second)}, device)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := speak(ctx, c, "Credo"); err != nil {
		t.Fatalf("speak failed: %v", err)
	}
	if c.State() != tts.StateIdle || device.Active() != 0 {
		t.Errorf("Expected playback stopped, got %s with %d players", c.State(), device.Active())
	}
}

func TestNewPlayer(t *testing.T) {
	a := &app{gemini: gemini.Offline(gemini.DefaultConfig())}

	setConfig(t, "audio.cache_mb", 1)
	p, err := a.newPlayer(true)
	if err != nil {
		t.Fatalf("newPlayer failed: %v", err)
	}
	if p.cache == nil || p.cache.Stats().Capacity != 1<<20 {
		t.Errorf("Expected a 1 MB speech cache, got %+v", p.cache)
	}
	if p.device.SampleRate() != tts.SampleRate || p.device.ChannelCount() != tts.Channels {
		t.Errorf("device opened at %dHz/%dch", p.device.SampleRate(), p.device.ChannelCount())
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	setConfig(t, "audio.cache_mb", 0)
	p, err = a.newPlayer(true)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close() //nolint:errcheck
	if p.cache != nil {
		t.Error("cache_mb 0 should disable the speech cache")
	}
}
