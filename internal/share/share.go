// Package share builds the texts used to copy and share prayers and puts
// them on the clipboard.
package share

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/feeoracao/oracao/internal/catalog"
)

// Attribution strings.
const (
	AppTitle    = "Fé e Oração - Por Tiago Santana"
	AppText     = "Confira este conteúdo inspirador do app Fé e Oração, desenvolvido por Tiago Santana."
	copyFooter  = "Enviado por Fé e Oração (Tiago Santana)"
	shareFooter = "_Enviado pelo app Fé e Oração (Tiago Santana)_"
	rosaryCall  = "Vamos rezar juntos? _App Fé e Oração - Por Tiago Santana_"
)

// Data is what gets shared: a title, the message and an optional link.
type Data struct {
	Title string
	Text  string
	URL   string
}

// Clipboard returns the text placed on the clipboard when sharing.
func (d Data) Clipboard() string {
	if d.URL == "" {
		return d.Text
	}
	return d.Text + "\n\n" + d.URL
}

// CopyText is the plain copy of a prayer.
func CopyText(p catalog.Prayer) string {
	return fmt.Sprintf("%s\n\n%s\n\n%s", p.Title, p.Content, copyFooter)
}

// ForPrayer is the share message of a prayer.
func ForPrayer(p catalog.Prayer) Data {
	return Data{
		Title: p.Title,
		Text:  fmt.Sprintf("🙏 *%s*\n\n%s\n\n%s", p.Title, p.Content, shareFooter),
	}
}

// ForRosary is the share message of a rosary.
func ForRosary(r catalog.Rosary) Data {
	return Data{
		Title: r.Title,
		Text:  fmt.Sprintf("📿 *%s*\n\n%s\n\n%s", r.Title, r.Description, rosaryCall),
	}
}

// Default is the share message of the app itself.
func Default() Data {
	return Data{Title: AppTitle, Text: AppText}
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard copies through OSC 52, which works over SSH, and the
// native clipboard when one is available.
type SystemClipboard struct{}

// WriteAll copies text. It fails only when the native clipboard fails and
// the terminal does not look OSC 52 capable.
func (SystemClipboard) WriteAll(text string) error {
	termenv.Copy(text)
	if err := clipboard.WriteAll(text); err != nil {
		log.Debug("Native clipboard unavailable", "error", err)
		if termenv.EnvColorProfile() == termenv.Ascii {
			return fmt.Errorf("clipboard unavailable: %w", err)
		}
	}
	return nil
}
