// Package liturgy describes the liturgical day shown on the home card and
// in the calendar.
package liturgy

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Day is the saint, season and colour of a date, with a short message.
// The JSON names match what the generative service is asked to return.
type Day struct {
	Saint   string `json:"santo"`
	Season  string `json:"tempo"`
	Color   string `json:"cor"`
	Message string `json:"mensagem"`
}

// Fallback is the day shown when the service cannot be reached.
func Fallback() Day {
	return Day{
		Saint:   "Santo do Dia",
		Season:  "Tempo Comum",
		Color:   "verde",
		Message: "Caminhemos com alegria seguindo os passos de Nosso Senhor Jesus Cristo.",
	}
}

// Complete reports whether every field is filled in.
func (d Day) Complete() bool {
	return d.Saint != "" && d.Season != "" && d.Color != "" && d.Message != ""
}

// Liturgical returns the normalized colour of the day.
func (d Day) Liturgical() Color {
	return ParseColor(d.Color)
}

// Color is a liturgical vestment colour.
type Color string

const (
	Green  Color = "green"
	Purple Color = "purple"
	White  Color = "white"
	Red    Color = "red"
	Rose   Color = "rose"
)

var colorNames = map[string]Color{
	"green":    Green,
	"verde":    Green,
	"purple":   Purple,
	"violet":   Purple,
	"roxo":     Purple,
	"violeta":  Purple,
	"white":    White,
	"branco":   White,
	"dourado":  White,
	"red":      Red,
	"vermelho": Red,
	"rose":     Rose,
	"rosa":     Rose,
	"róseo":    Rose,
}

// ParseColor accepts English or Portuguese colour names in any case. It
// returns "" for anything else.
func ParseColor(s string) Color {
	return colorNames[strings.ToLower(strings.TrimSpace(s))]
}

// Info is how a colour is presented.
type Info struct {
	Label      string
	Foreground lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
}

// Palette returns the label and colours for c. Unknown colours and rose
// are shown as "Especial".
func Palette(c Color) Info {
	switch c {
	case Green:
		return Info{
			Label:      "Tempo Comum",
			Foreground: lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#6EE7B7"},
			Background: lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#064E3B"},
		}
	case Purple:
		return Info{
			Label:      "Quaresma/Advento",
			Foreground: lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8B4FE"},
			Background: lipgloss.AdaptiveColor{Light: "#F3E8FF", Dark: "#3B0764"},
		}
	case White:
		return Info{
			Label:      "Festas e Solenidades",
			Foreground: lipgloss.AdaptiveColor{Light: "#78350F", Dark: "#FDE68A"},
			Background: lipgloss.AdaptiveColor{Light: "#FAFAF9", Dark: "#44403C"},
		}
	case Red:
		return Info{
			Label:      "Paixão e Mártires",
			Foreground: lipgloss.AdaptiveColor{Light: "#9F1239", Dark: "#FDA4AF"},
			Background: lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#4C0519"},
		}
	default:
		return Info{
			Label:      "Especial",
			Foreground: lipgloss.AdaptiveColor{Light: "#78350F", Dark: "#FCD34D"},
			Background: lipgloss.AdaptiveColor{Light: "#FFFBEB", Dark: "#451A03"},
		}
	}
}

// DateLayout is the pt-BR short date layout.
const DateLayout = "02/01/2006"

// FormatDate formats t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a dd/mm/yyyy date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected dd/mm/aaaa: %w", s, err)
	}
	return t, nil
}
