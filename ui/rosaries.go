package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/utils"
)

type rosariesModel struct {
	common   *commonModel
	cursor   int
	selected catalog.Rosary
	step     int
}

func newRosariesModel(common *commonModel) rosariesModel {
	return rosariesModel{common: common}
}

func (m *rosariesModel) open(r catalog.Rosary) {
	m.selected = r
	m.step = 0
}

// update returns the rosary to open, if any.
func (m rosariesModel) update(msg tea.Msg) (rosariesModel, *catalog.Rosary) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	rosaries := m.common.svc.Catalog.Rosaries()

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rosaries)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(rosaries) {
			r := rosaries[m.cursor]
			return m, &r
		}
	}
	return m, nil
}

func (m *rosariesModel) updateGuide(msg tea.Msg) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}
	switch key.String() {
	case "up", "k", "left", "h":
		if m.step > 0 {
			m.step--
		}
	case "down", "j", "right", "l", "enter":
		if m.step < len(m.selected.Steps)-1 {
			m.step++
		}
	case "home", "g":
		m.step = 0
	}
}

func (m rosariesModel) listView() string {
	var b strings.Builder
	width := m.textWidth()

	for i, r := range m.common.svc.Catalog.Rosaries() {
		title := r.Title
		if i == m.cursor {
			b.WriteString(selectedBarStyle.String() + " " + selectedStyle.Render(title))
		} else {
			b.WriteString("  " + titleStyle.Render(title))
		}
		b.WriteString("\n")
		desc := utils.Wrap(r.Description, width)
		b.WriteString(indent(subtleStyle.Render(desc), 2))
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  %d passos", len(r.Steps))))
		b.WriteString("\n\n")
	}
	return indent(scrollWindow(b.String(), m.cursor*4, m.common.bodyHeight()), 2)
}

func (m rosariesModel) guideView() string {
	r := m.selected
	width := m.textWidth()

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(italicStyle.Render(utils.Wrap(r.Description, width)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("Guia Autor: Tiago Santana"))
	b.WriteString("\n\n")

	current := 0
	for i, s := range r.Steps {
		marker := subtleStyle.Render(fmt.Sprintf("%2d ", i+1))
		title := s.Title
		if i == m.step {
			current = strings.Count(b.String(), "\n")
			marker = selectedStyle.Render(fmt.Sprintf("%2d ", i+1))
			title = selectedStyle.Render(title)
		} else {
			title = lipgloss.NewStyle().Bold(true).Render(title)
		}
		b.WriteString(marker + title + "\n")

		if i == m.step {
			b.WriteString(indent(utils.Wrap(s.Description, width-3), 3))
			if s.Prayer != "" {
				b.WriteString(indent(italicStyle.Render(utils.Wrap(s.Prayer, width-3)), 3))
			}
		}
	}
	return indent(scrollWindow(b.String(), current, m.common.bodyHeight()), 2)
}

func (m rosariesModel) textWidth() int {
	if m.common.width == 0 {
		return 72
	}
	return max(20, min(72, m.common.width-6))
}
