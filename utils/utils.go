// Package utils provides helpers shared by the CLI and the TUI.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/reflow/wordwrap"
)

// ExpandPath expands tilde and all environment variables from the given path.
func ExpandPath(path string) string {
	s, err := homedir.Expand(path)
	if err == nil {
		return os.ExpandEnv(s)
	}
	return os.ExpandEnv(path)
}

// DataDir resolves the configured data directory, falling back to def.
func DataDir(configured, def string) string {
	if strings.TrimSpace(configured) == "" {
		return def
	}
	return filepath.Clean(ExpandPath(configured))
}

// GlamourStyle returns a glamour.TermRendererOption based on the given style.
// Built-in style names are used as-is, anything else is read as a JSON path.
func GlamourStyle(style string) glamour.TermRendererOption {
	switch {
	case style == "" || style == styles.AutoStyle:
		return glamour.WithAutoStyle()
	case styles.DefaultStyles[style] != nil:
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStylePath(ExpandPath(style))
	}
}

// Wrap word-wraps plain text at width. A width of 0 disables wrapping.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
