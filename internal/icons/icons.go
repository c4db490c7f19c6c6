// Package icons keeps the generated app and support icons. An icon is
// generated once and then served from the store until regenerated.
package icons

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/store"
)

var (
	// ErrUnavailable is returned when an icon is neither stored nor generatable.
	ErrUnavailable = errors.New("icon unavailable")
	// ErrInvalidDataURI is returned for a malformed data URI.
	ErrInvalidDataURI = errors.New("invalid data uri")
)

// Generator renders an icon as a data URI.
type Generator interface {
	GenerateIcon(ctx context.Context, kind gemini.IconKind) (string, error)
}

// Service serves icons from the store, generating missing ones.
type Service struct {
	store store.Store
	gen   Generator
}

// New returns a Service backed by s and g.
func New(s store.Store, g Generator) *Service {
	return &Service{store: s, gen: g}
}

// Key returns the store key of an icon.
func Key(kind gemini.IconKind) (string, error) {
	switch kind {
	case gemini.AppIcon:
		return store.KeyAppIcon, nil
	case gemini.SupportIcon:
		return store.KeySupportIcon, nil
	default:
		return "", fmt.Errorf("unknown icon %q", string(kind))
	}
}

// Get returns the stored icon, generating and storing it when missing.
func (s *Service) Get(ctx context.Context, kind gemini.IconKind) (string, error) {
	key, err := Key(kind)
	if err != nil {
		return "", err
	}

	if data, ok := s.store.Get(key); ok && len(data) > 0 {
		if _, _, err := DecodeDataURI(string(data)); err == nil {
			return string(data), nil
		}
		log.Warn("Discarding invalid stored icon", "kind", kind)
	}
	return s.generate(ctx, kind, key)
}

// Stored returns the stored icon without generating one.
func (s *Service) Stored(kind gemini.IconKind) (string, bool) {
	key, err := Key(kind)
	if err != nil {
		return "", false
	}
	data, ok := s.store.Get(key)
	if !ok {
		return "", false
	}
	if _, _, err := DecodeDataURI(string(data)); err != nil {
		return "", false
	}
	return string(data), true
}

// Regenerate replaces the stored icon with a new one. The old icon is
// kept when generation fails.
func (s *Service) Regenerate(ctx context.Context, kind gemini.IconKind) (string, error) {
	key, err := Key(kind)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, kind, key)
}

func (s *Service) generate(ctx context.Context, kind gemini.IconKind, key string) (string, error) {
	uri, err := s.gen.GenerateIcon(ctx, kind)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if _, _, err := DecodeDataURI(uri); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err := s.store.Put(key, []byte(uri)); err != nil {
		log.Warn("Failed to store icon", "kind", kind, "error", err)
	}
	log.Info("Generated icon", "kind", kind, "size", len(uri))
	return uri, nil
}

// DecodeDataURI splits a base64 data URI into its media type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok || mime == "" {
		return "", nil, ErrInvalidDataURI
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return "", nil, ErrInvalidDataURI
	}
	return mime, data, nil
}

// Extension returns a file extension for an image media type.
func Extension(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
