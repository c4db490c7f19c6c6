package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/truncate"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/utils"
)

type journalFocus int

const (
	focusTitle journalFocus = iota
	focusContent
)

type journalModel struct {
	common  *commonModel
	entries []journal.Entry
	cursor  int

	editing      bool
	focus        journalFocus
	titleInput   textinput.Model
	contentInput textarea.Model
	linkedPrayer string
	err          error
	now          func() time.Time
}

func newJournalModel(common *commonModel) journalModel {
	ti := textinput.New()
	ti.Placeholder = "Título da reflexão"
	ti.Prompt = ""
	ti.CharLimit = 80

	ta := textarea.New()
	ta.Placeholder = "O que o Senhor falou ao seu coração hoje?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	return journalModel{
		common:       common,
		titleInput:   ti,
		contentInput: ta,
		now:          time.Now,
	}
}

func (m *journalModel) setSize(w, h int) {
	m.titleInput.Width = max(10, min(72, w-8))
	m.contentInput.SetWidth(max(10, min(72, w-6)))
	m.contentInput.SetHeight(max(3, min(12, h-8)))
}

func (m *journalModel) setEntries(entries []journal.Entry) {
	m.entries = entries
	m.cursor = max(0, min(m.cursor, len(entries)-1))
}

// startEditing opens the editor, linked to p when it has an id.
func (m *journalModel) startEditing(p catalog.Prayer) tea.Cmd {
	m.editing = true
	m.err = nil
	m.linkedPrayer = p.ID
	m.titleInput.Reset()
	m.contentInput.Reset()
	if p.Title != "" {
		m.titleInput.SetValue(p.Title)
		m.focus = focusContent
		m.titleInput.Blur()
		return m.contentInput.Focus()
	}
	m.focus = focusTitle
	m.contentInput.Blur()
	return m.titleInput.Focus()
}

func (m *journalModel) stopEditing() {
	m.editing = false
	m.linkedPrayer = ""
	m.titleInput.Blur()
	m.contentInput.Blur()
}

func (m *journalModel) toggleFocus() tea.Cmd {
	if m.focus == focusTitle {
		m.focus = focusContent
		m.titleInput.Blur()
		return m.contentInput.Focus()
	}
	m.focus = focusTitle
	m.contentInput.Blur()
	return m.titleInput.Focus()
}

func (m journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if saved, ok := msg.(journalSavedMsg); ok {
		if saved.err != nil {
			log.Error("Failed to save journal entry", "error", saved.err)
			m.err = saved.err
			return m, nil
		}
		m.stopEditing()
		m.cursor = 0
		return m, loadJournalCmd(m.common)
	}

	if m.editing {
		return m.updateEditor(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "n":
		cmd := m.startEditing(catalog.Prayer{})
		return m, cmd
	case "d", "delete":
		if m.cursor < len(m.entries) {
			return m, deleteEntryCmd(m.common, m.entries[m.cursor].ID)
		}
	}
	return m, nil
}

func (m journalModel) updateEditor(msg tea.Msg) (journalModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.stopEditing()
			return m, nil
		case "tab", "shift+tab":
			cmd := m.toggleFocus()
			return m, cmd
		case "ctrl+s":
			if strings.TrimSpace(m.contentInput.Value()) == "" {
				m.err = journal.ErrEmptyContent
				return m, nil
			}
			return m, saveEntryCmd(m.common, m.titleInput.Value(), m.contentInput.Value(), m.linkedPrayer)
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.contentInput, cmd = m.contentInput.Update(msg)
	}
	return m, cmd
}

func (m journalModel) view() string {
	if m.editing {
		return m.editorView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Reflexões"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(italicStyle.Render("Nenhuma reflexão guardada ainda..."))
		return indent(b.String(), 2)
	}

	width := 72
	if m.common.width > 0 {
		width = max(20, min(72, m.common.width-8))
	}
	now := m.now()

	cursorLine := 0
	for i, e := range m.entries {
		if i == m.cursor {
			cursorLine = strings.Count(b.String(), "\n")
		}
		title := truncate.StringWithTail(e.Title, uint(width), ellipsis) //nolint:gosec
		bar := "  "
		if i == m.cursor {
			bar = selectedBarStyle.String() + " "
			title = selectedStyle.Render(title)
		} else {
			title = titleStyle.Render(title)
		}
		b.WriteString(bar + title + "\n")

		meta := e.Date + " · " + journal.Age(e, now)
		if p, err := m.common.svc.Catalog.Prayer(e.LinkedPrayerID); err == nil {
			meta += " · " + p.Title
		}
		b.WriteString("  " + subtleStyle.Render(meta) + "\n")

		content := utils.Wrap(e.Content, width)
		if i != m.cursor {
			content = truncate.StringWithTail(strings.SplitN(content, "\n", 2)[0], uint(width), ellipsis) //nolint:gosec
		}
		b.WriteString(indent(italicStyle.Render(content), 2))
		b.WriteString("\n")
	}
	return indent(scrollWindow(b.String(), cursorLine, m.common.bodyHeight()), 2)
}

func (m journalModel) editorView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Nova Reflexão"))
	b.WriteString("\n\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.contentInput.View())
	b.WriteString("\n\n")
	if m.err != nil {
		msg := "Não foi possível guardar a reflexão."
		if errors.Is(m.err, journal.ErrEmptyContent) {
			msg = "Escreva sua reflexão antes de guardar."
		}
		b.WriteString(errorTitleStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString(subtleStyle.Render("ctrl+s Guardar Reflexão • esc Cancelar"))
	return indent(b.String(), 2)
}
