package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/feeoracao/oracao/internal/liturgy"
)

const dayCellWidth = 4

var (
	monthNames = [...]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
	weekdayInitials = [...]string{"D", "S", "T", "Q", "Q", "S", "S"}

	titleCase = cases.Title(language.BrazilianPortuguese)
)

// monthTitle renders the month as "Outubro de 2026".
func monthTitle(t time.Time) string {
	return fmt.Sprintf("%s de %d", titleCase.String(monthNames[t.Month()-1]), t.Year())
}

type calendarModel struct {
	common   *commonModel
	month    time.Time // first day of the shown month
	selected int       // day of month
	date     string    // date of info
	info     liturgy.Day
	pending  string    // date requested and not answered yet
	loading  bool
}

func newCalendarModel(common *commonModel, now time.Time) calendarModel {
	return calendarModel{
		common:   common,
		month:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		selected: now.Day(),
		date:     liturgy.FormatDate(now),
		pending:  liturgy.FormatDate(now),
		loading:  true,
	}
}

func (m calendarModel) daysInMonth() int {
	return m.month.AddDate(0, 1, -1).Day()
}

func (m calendarModel) selectedDate() string {
	return liturgy.FormatDate(m.month.AddDate(0, 0, m.selected-1))
}

// setDay stores the answer to the pending request, even when the
// selection has moved on since.
func (m *calendarModel) setDay(date string, day liturgy.Day) {
	if !m.loading || date != m.pending {
		return
	}
	m.date = date
	m.info = day
	m.pending = ""
	m.loading = false
}

// update moves the selection. It returns the date to load when the user
// asks for it.
func (m *calendarModel) update(msg tea.Msg) (string, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", false
	}

	day := m.selected
	switch key.String() {
	case "left", "h":
		day--
	case "right", "l":
		day++
	case "up", "k":
		day -= 7
	case "down", "j":
		day += 7
	case "home", "g":
		day = 1
	case "end", "G":
		day = m.daysInMonth()
	case "enter":
		if m.loading {
			return "", false
		}
		m.loading = true
		m.pending = m.selectedDate()
		return m.pending, true
	}
	m.selected = max(1, min(day, m.daysInMonth()))
	return "", false
}

func (m calendarModel) view(spinner string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(monthTitle(m.month)))
	b.WriteString("\n\n")
	b.WriteString(m.gridView())
	b.WriteString("\n")

	width := 60
	if m.common.width > 0 {
		width = max(20, min(72, m.common.width-8))
	}
	b.WriteString(liturgyCard(m.info, m.date, m.loading, spinner, width))
	if !m.loading && m.date != m.selectedDate() {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("enter para consultar " + m.selectedDate()))
	}
	return indent(b.String(), 2)
}

func (m calendarModel) gridView() string {
	var b strings.Builder

	for _, d := range weekdayInitials {
		b.WriteString(subtleStyle.Render(pad(d, dayCellWidth)))
	}
	b.WriteString("\n")

	offset := int(m.month.Weekday())
	b.WriteString(strings.Repeat(" ", offset*dayCellWidth))

	for day := 1; day <= m.daysInMonth(); day++ {
		cell := pad(fmt.Sprintf("%d", day), dayCellWidth)
		if day == m.selected {
			cell = selectedStyle.Render(pad(fmt.Sprintf("[%d]", day), dayCellWidth))
		}
		b.WriteString(cell)
		if (offset+day)%7 == 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// pad right-aligns s in a cell of width columns.
func pad(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
