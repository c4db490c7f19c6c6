package ui

import (
	"context"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/liturgy"
	"github.com/feeoracao/oracao/internal/share"
	"github.com/feeoracao/oracao/pkg/tts"
)

// Content produces the generated texts shown in the app.
type Content interface {
	Reflection(ctx context.Context, title string) string
	DailyInfo(ctx context.Context, date string) liturgy.Day
}

// Icons serves the generated icons.
type Icons interface {
	Stored(kind gemini.IconKind) (string, bool)
	Get(ctx context.Context, kind gemini.IconKind) (string, error)
	Regenerate(ctx context.Context, kind gemini.IconKind) (string, error)
}

// Audio plays one prayer at a time.
type Audio interface {
	Toggle(ctx context.Context, text string) error
	Stop()
	State() tts.State
	Changes() <-chan tts.State
	Close() error
}

// Services are the collaborators of the TUI. StoreEvents, when set,
// delivers keys changed on disk by other processes.
type Services struct {
	Catalog     *catalog.Catalog
	Journal     *journal.Journal
	Content     Content
	Icons       Icons
	Audio       Audio
	Clipboard   share.Clipboard
	StoreEvents <-chan string
}
