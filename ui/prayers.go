package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/feeoracao/oracao/internal/catalog"
)

type prayersModel struct {
	common      *commonModel
	filterInput textinput.Model
	filtering   bool
	items       []catalog.Prayer
	cursor      int
}

func newPrayersModel(common *commonModel) prayersModel {
	ti := textinput.New()
	ti.Prompt = "Buscar: "
	ti.PromptStyle = selectedStyle
	ti.Cursor.Style = selectedStyle
	ti.CharLimit = 40

	m := prayersModel{
		common:      common,
		filterInput: ti,
	}
	m.resetFilter()
	return m
}

func (m *prayersModel) resetFilter() {
	m.filtering = false
	m.filterInput.Reset()
	m.filterInput.Blur()
	m.applyFilter()
}

func (m *prayersModel) applyFilter() {
	m.items = m.common.svc.Catalog.Search(m.filterInput.Value())
	if m.filterInput.Value() == "" {
		m.items = groupByCategory(m.common.svc.Catalog)
	}
	m.cursor = max(0, min(m.cursor, len(m.items)-1))
}

// groupByCategory orders prayers by category, keeping the catalog order
// inside each category.
func groupByCategory(c *catalog.Catalog) []catalog.Prayer {
	var out []catalog.Prayer
	for _, cat := range c.Categories() {
		out = append(out, c.ByCategory(cat)...)
	}
	return out
}

func (m prayersModel) selected() (catalog.Prayer, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return catalog.Prayer{}, false
	}
	return m.items[m.cursor], true
}

// update returns the prayer to open, if any.
func (m prayersModel) update(msg tea.Msg) (prayersModel, tea.Cmd, *catalog.Prayer) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.filtering {
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd, nil
		}
		return m, nil, nil
	}

	if m.filtering {
		switch key.String() {
		case "esc":
			m.resetFilter()
			return m, nil, nil
		case "enter", "tab", "up", "down":
			m.filtering = false
			m.filterInput.Blur()
			return m, nil, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.cursor = 0
		m.applyFilter()
		return m, cmd, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.items)-1)
	case "/":
		m.filtering = true
		m.cursor = 0
		cmd := m.filterInput.Focus()
		return m, cmd, nil
	case "enter":
		if p, ok := m.selected(); ok {
			return m, nil, &p
		}
	}
	return m, nil, nil
}

func (m prayersModel) view() string {
	var b strings.Builder

	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString(subtleStyle.Render("Nenhuma oração encontrada."))
		return indent(b.String(), 2)
	}

	grouped := m.filterInput.Value() == ""
	lastCategory := ""
	width := uint(max(10, m.common.width-6)) //nolint:gosec

	for i, p := range m.items {
		if grouped && p.Category != lastCategory {
			if lastCategory != "" {
				b.WriteString("\n")
			}
			b.WriteString(headingStyle.UnsetMarginTop().Render(strings.ToUpper(p.Category)))
			b.WriteString("\n")
			lastCategory = p.Category
		}

		line := truncate.StringWithTail(p.Title, width, ellipsis)
		if i == m.cursor {
			b.WriteString(selectedBarStyle.String() + " " + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		if !grouped {
			b.WriteString(subtleStyle.Render("  " + p.Category))
		}
		b.WriteString("\n")
	}

	return indent(scrollWindow(b.String(), m.cursorLine(grouped), m.common.bodyHeight()), 2)
}

// cursorLine is the rendered line of the cursor, used to keep it visible.
func (m prayersModel) cursorLine(grouped bool) int {
	line := 0
	if m.filtering || m.filterInput.Value() != "" {
		line = 2
	}
	lastCategory := ""
	for i, p := range m.items {
		if grouped && p.Category != lastCategory {
			if lastCategory != "" {
				line++
			}
			line++
			lastCategory = p.Category
		}
		if i == m.cursor {
			return line
		}
		line++
	}
	return line
}

// scrollWindow cuts s to h lines around line.
func scrollWindow(s string, line, h int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if h <= 0 || len(lines) <= h {
		return s
	}
	start := max(0, min(line-h/2, len(lines)-h))
	return strings.Join(lines[start:start+h], "\n")
}
