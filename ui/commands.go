package ui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/liturgy"
	"github.com/feeoracao/oracao/pkg/tts"
)

var (
	errNoJournal = errors.New("journal not available")
	errNoIcons   = errors.New("icons not available")
)

type (
	dailyInfoMsg struct {
		date  string
		day   liturgy.Day
		today bool
	}
	reflectionMsg struct {
		prayerID string
		text     string
	}
	journalLoadedMsg struct {
		entries []journal.Entry
		err     error
	}
	journalSavedMsg struct {
		entry journal.Entry
		err   error
	}
	iconsLoadedMsg struct {
		app     string
		support string
	}
	iconGeneratedMsg struct {
		kind gemini.IconKind
		uri  string
		err  error
	}
	copiedMsg struct {
		message string
		err     error
	}
	storeChangedMsg struct{ key string }
	audioStateMsg   struct {
		state tts.State
		ok    bool
	}
	audioResultMsg struct{ err error }
)

func loadDailyInfoCmd(c *commonModel, date string, today bool) tea.Cmd {
	content := c.svc.Content
	ctx := c.ctx
	return func() tea.Msg {
		if date == "" {
			date = todayString()
		}
		if content == nil {
			return dailyInfoMsg{date: date, day: liturgy.Fallback(), today: today}
		}
		return dailyInfoMsg{date: date, day: content.DailyInfo(ctx, date), today: today}
	}
}

func loadReflectionCmd(c *commonModel, p catalog.Prayer) tea.Cmd {
	content := c.svc.Content
	ctx := c.ctx
	return func() tea.Msg {
		if content == nil {
			return reflectionMsg{prayerID: p.ID, text: gemini.FallbackReflection}
		}
		return reflectionMsg{prayerID: p.ID, text: content.Reflection(ctx, p.Title)}
	}
}

func loadJournalCmd(c *commonModel) tea.Cmd {
	j := c.svc.Journal
	return func() tea.Msg {
		if j == nil {
			return journalLoadedMsg{}
		}
		entries, err := j.List()
		return journalLoadedMsg{entries: entries, err: err}
	}
}

func saveEntryCmd(c *commonModel, title, content, prayerID string) tea.Cmd {
	j := c.svc.Journal
	return func() tea.Msg {
		if j == nil {
			return journalSavedMsg{err: errNoJournal}
		}
		e, err := j.AddLinked(title, content, prayerID)
		return journalSavedMsg{entry: e, err: err}
	}
}

func deleteEntryCmd(c *commonModel, id string) tea.Cmd {
	j := c.svc.Journal
	return func() tea.Msg {
		if j == nil {
			return journalLoadedMsg{err: errNoJournal}
		}
		if err := j.Delete(id); err != nil {
			return journalLoadedMsg{err: err}
		}
		entries, err := j.List()
		return journalLoadedMsg{entries: entries, err: err}
	}
}

func loadIconsCmd(c *commonModel) tea.Cmd {
	icons := c.svc.Icons
	ctx := c.ctx
	return func() tea.Msg {
		if icons == nil {
			return iconsLoadedMsg{}
		}
		var msg iconsLoadedMsg
		msg.app, _ = icons.Stored(gemini.AppIcon)
		// the support icon is generated on first run
		support, err := icons.Get(ctx, gemini.SupportIcon)
		if err != nil {
			log.Warn("Support icon unavailable", "error", err)
		}
		msg.support = support
		return msg
	}
}

func generateIconCmd(c *commonModel, kind gemini.IconKind) tea.Cmd {
	icons := c.svc.Icons
	ctx := c.ctx
	return func() tea.Msg {
		if icons == nil {
			return iconGeneratedMsg{kind: kind, err: errNoIcons}
		}
		uri, err := icons.Regenerate(ctx, kind)
		return iconGeneratedMsg{kind: kind, uri: uri, err: err}
	}
}

func copyCmd(c *commonModel, text, message string) tea.Cmd {
	cb := c.svc.Clipboard
	return func() tea.Msg {
		return copiedMsg{message: message, err: cb.WriteAll(text)}
	}
}

func toggleAudioCmd(c *commonModel, text string) tea.Cmd {
	audio := c.svc.Audio
	ctx := c.ctx
	return func() tea.Msg {
		return audioResultMsg{err: audio.Toggle(ctx, text)}
	}
}

func listenAudioCmd(ch <-chan tts.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		return audioStateMsg{state: s, ok: ok}
	}
}

func watchStoreCmd(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return nil
		}
		return storeChangedMsg{key: key}
	}
}

func todayString() string {
	return liturgy.FormatDate(time.Now())
}
