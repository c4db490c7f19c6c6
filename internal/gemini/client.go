// Package gemini talks to the Gemini API for reflections, speech, the
// liturgical day and icons. Every call is rate limited and bounded by a
// timeout; callers decide whether to fall back or surface the failure.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var (
	// ErrNoAPIKey is returned by every call of an offline client.
	ErrNoAPIKey = errors.New("gemini api key not configured")
	// ErrEmptyResponse is returned when the service answers without content.
	ErrEmptyResponse = errors.New("empty response")
	// ErrNoAudio is returned when a speech response has no inline audio.
	ErrNoAudio = errors.New("no audio in response")
	// ErrNoImage is returned when an image response has no inline image.
	ErrNoImage = errors.New("no image in response")
	// ErrTextTooLong is returned for speech requests above maxSpeechText.
	ErrTextTooLong = errors.New("text too long")
)

const maxSpeechText = 5000

// Config holds the client settings.
type Config struct {
	APIKey            string
	TextModel         string
	SpeechModel       string
	ImageModel        string
	Voice             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// DefaultConfig returns the models and limits the app ships with.
func DefaultConfig() Config {
	return Config{
		TextModel:         "gemini-3-flash-preview",
		SpeechModel:       "gemini-2.5-flash-preview-tts",
		ImageModel:        "gemini-2.5-flash-image",
		Voice:             "Kore",
		RequestsPerMinute: 30,
		Timeout:           60 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TextModel == "" {
		c.TextModel = def.TextModel
	}
	if c.SpeechModel == "" {
		c.SpeechModel = def.SpeechModel
	}
	if c.ImageModel == "" {
		c.ImageModel = def.ImageModel
	}
	if c.Voice == "" {
		c.Voice = def.Voice
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = def.RequestsPerMinute
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// generator is the part of the genai SDK the client uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client is safe for concurrent use.
type Client struct {
	models  generator
	limiter *rate.Limiter
	cfg     Config
}

// New connects to the Gemini API with cfg.APIKey.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newClient(gc.Models, cfg), nil
}

// Offline returns a client whose calls all fail with ErrNoAPIKey, so
// every feature degrades to its fallback.
func Offline(cfg Config) *Client {
	return newClient(offline{}, cfg)
}

func newClient(g generator, cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		models:  g,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 2),
		cfg:     cfg,
	}
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// generate runs one rate-limited request bounded by the configured timeout.
func (c *Client) generate(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", model, err)
	}
	log.Debug("Gemini response", "model", model, "elapsed", time.Since(start))
	return resp, nil
}

// parts returns the parts of the first candidate.
func parts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	return resp.Candidates[0].Content.Parts
}

// text concatenates the text parts of the first candidate.
func text(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, p := range parts(resp) {
		if p != nil && !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// inline returns the first inline blob of the first candidate.
func inline(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, p := range parts(resp) {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData
		}
	}
	return nil
}

type offline struct{}

func (offline) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, ErrNoAPIKey
}
