package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/feeoracao/oracao/internal/liturgy"
)

// Icons are square.
const iconAspectRatio = "1:1"

// IconKind selects which icon to generate.
type IconKind string

const (
	AppIcon     IconKind = "app"
	SupportIcon IconKind = "support"
)

// Prompt returns the generation prompt of the icon.
func (k IconKind) Prompt() (string, error) {
	switch k {
	case AppIcon:
		return appIconPrompt, nil
	case SupportIcon:
		return supportIconPrompt, nil
	default:
		return "", fmt.Errorf("unknown icon %q", string(k))
	}
}

// Reflection explains the spiritual meaning of a prayer. It never fails:
// errors and empty answers yield FallbackReflection.
func (c *Client) Reflection(ctx context.Context, title string) string {
	resp, err := c.generate(ctx, c.cfg.TextModel, reflectionPrompt(title), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	})
	if err != nil {
		log.Error("Reflection unavailable", "title", title, "error", err)
		return FallbackReflection
	}

	out := text(resp)
	if out == "" {
		log.Warn("Empty reflection, using fallback", "title", title)
		return FallbackReflection
	}
	return out
}

// Synthesize reads text aloud and returns the audio as base64 encoded
// 16-bit PCM at 24kHz mono.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	if len(text) > maxSpeechText {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrTextTooLong, len(text), maxSpeechText)
	}

	resp, err := c.generate(ctx, c.cfg.SpeechModel, speechPrompt(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
			},
		},
	})
	if err != nil {
		return "", err
	}

	blob := inline(resp)
	if blob == nil {
		return "", ErrNoAudio
	}
	log.Debug("Speech received", "bytes", len(blob.Data), "mime", blob.MIMEType)
	return base64.StdEncoding.EncodeToString(blob.Data), nil
}

var dailyInfoSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"santo": {
			Type:        genai.TypeString,
			Description: "Nome do santo ou festa do dia.",
		},
		"tempo": {
			Type:        genai.TypeString,
			Description: "Tempo litúrgico atual (ex: Tempo Comum, Quaresma, etc).",
		},
		"cor": {
			Type:        genai.TypeString,
			Description: "Cor litúrgica: verde, branco, roxo, vermelho ou rosa.",
		},
		"mensagem": {
			Type:        genai.TypeString,
			Description: "Uma breve mensagem de inspiração baseada na liturgia desse dia específico.",
		},
	},
	Required: []string{"santo", "tempo", "cor", "mensagem"},
}

// DailyInfo returns the liturgical day for a dd/mm/yyyy date, today when
// date is empty. It never fails: any error yields liturgy.Fallback().
func (c *Client) DailyInfo(ctx context.Context, date string) liturgy.Day {
	if strings.TrimSpace(date) == "" {
		date = liturgy.FormatDate(time.Now())
	}

	day, err := c.dailyInfo(ctx, date)
	if err != nil {
		log.Error("Daily info unavailable", "date", date, "error", err)
		return liturgy.Fallback()
	}
	return day
}

func (c *Client) dailyInfo(ctx context.Context, date string) (liturgy.Day, error) {
	resp, err := c.generate(ctx, c.cfg.TextModel, dailyInfoPrompt(date), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   dailyInfoSchema,
	})
	if err != nil {
		return liturgy.Day{}, err
	}

	raw := text(resp)
	if raw == "" {
		return liturgy.Day{}, ErrEmptyResponse
	}

	var day liturgy.Day
	if err := json.Unmarshal([]byte(raw), &day); err != nil {
		return liturgy.Day{}, fmt.Errorf("invalid daily info: %w", err)
	}
	if !day.Complete() {
		return liturgy.Day{}, fmt.Errorf("incomplete daily info: %+v", day)
	}
	return day, nil
}

// GenerateIcon renders an icon and returns it as a data URI.
func (c *Client) GenerateIcon(ctx context.Context, kind IconKind) (string, error) {
	prompt, err := kind.Prompt()
	if err != nil {
		return "", err
	}

	resp, err := c.generate(ctx, c.cfg.ImageModel, prompt, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityText), string(genai.ModalityImage)},
		ImageConfig:        &genai.ImageConfig{AspectRatio: iconAspectRatio},
	})
	if err != nil {
		return "", err
	}

	blob := inline(resp)
	if blob == nil {
		return "", ErrNoImage
	}
	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob.Data), nil
}
