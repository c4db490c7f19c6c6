package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/utils"
)

type contentRenderedMsg struct {
	prayerID string
	content  string
}

// pagerModel shows a single prayer.
type pagerModel struct {
	common   *commonModel
	viewport viewport.Model

	prayer            catalog.Prayer
	reflection        string
	reflectionLoading bool
}

func newPagerModel(common *commonModel) pagerModel {
	// Init viewport
	vp := viewport.New(0, 0)
	vp.YPosition = 0

	return pagerModel{
		common:   common,
		viewport: vp,
	}
}

func (m *pagerModel) setSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h
}

// load resets the pager for p. The reflection is requested separately.
func (m *pagerModel) load(p catalog.Prayer) {
	log.Debug("Loading prayer", "id", p.ID)
	m.prayer = p
	m.reflection = ""
	m.reflectionLoading = true
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

// setReflection stores a reflection if it belongs to the current prayer.
func (m *pagerModel) setReflection(prayerID, text string) bool {
	if prayerID != m.prayer.ID {
		log.Debug("Dropping reflection of another prayer", "id", prayerID)
		return false
	}
	m.reflection = text
	m.reflectionLoading = false
	return true
}

func (m pagerModel) scrollPercent() float64 {
	return math.Max(0, math.Min(1, m.viewport.ScrollPercent()))
}

func (m pagerModel) update(msg tea.Msg) (pagerModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "home", "g":
			m.viewport.GotoTop()
		case "end", "G":
			m.viewport.GotoBottom()
		case "d":
			m.viewport.HalfPageDown()
		case "u":
			m.viewport.HalfPageUp()
		}

	case contentRenderedMsg:
		if msg.prayerID == m.prayer.ID {
			m.viewport.SetContent(msg.content)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m pagerModel) view() string {
	if m.reflectionLoading && m.viewport.TotalLineCount() == 0 {
		return indent(subtleStyle.Render("Carregando..."), 2)
	}
	return m.viewport.View()
}

// prayerMarkdown adds the reflection to the prayer's own layout.
func prayerMarkdown(p catalog.Prayer, reflection string, loading bool) string {
	var b strings.Builder

	b.WriteString(p.Markdown())
	b.WriteString("## Luz do Espírito\n\n")
	if loading {
		b.WriteString("*Buscando uma reflexão...*\n")
	} else {
		b.WriteString(reflection)
		b.WriteString("\n")
	}

	b.WriteString("\n---\n\nFé e Oração • Tiago Santana\n")
	return b.String()
}

// COMMANDS

func renderPrayerCmd(m pagerModel) tea.Cmd {
	return func() tea.Msg {
		md := prayerMarkdown(m.prayer, m.reflection, m.reflectionLoading)
		s, err := glamourRender(m, md)
		if err != nil {
			log.Error("error rendering with Glamour", "error", err)
			s = md
		}
		return contentRenderedMsg{prayerID: m.prayer.ID, content: s}
	}
}

// This is where the magic happens.
func glamourRender(m pagerModel, markdown string) (string, error) {
	if !config.GlamourEnabled {
		return markdown, nil
	}

	width := max(0, min(int(m.common.cfg.GlamourMaxWidth), m.viewport.Width)) //nolint:gosec
	r, err := glamour.NewTermRenderer(
		utils.GlamourStyle(m.common.cfg.GlamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("error creating glamour renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
