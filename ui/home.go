package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/feeoracao/oracao/internal/liturgy"
)

type homeModel struct {
	common       *commonModel
	today        string
	day          liturgy.Day
	loading      bool
	journalCount int
}

func newHomeModel(common *commonModel) homeModel {
	return homeModel{
		common:  common,
		today:   todayString(),
		loading: true,
	}
}

func (m *homeModel) setDay(day liturgy.Day) {
	m.day = day
	m.loading = false
}

func (m homeModel) view(spinner string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Fé e Oração"))
	b.WriteString(subtleStyle.Render("  Por Tiago Santana"))
	b.WriteString("\n")
	b.WriteString(italicStyle.Render(`"Jesus, eu confio em Vós"`))
	b.WriteString("\n\n")

	b.WriteString(liturgyCard(m.day, m.today, m.loading, spinner, m.cardWidth()))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Meu Diário"))
	b.WriteString("\n")
	switch m.journalCount {
	case 0:
		b.WriteString(subtleStyle.Render("Nenhuma reflexão guardada ainda..."))
	case 1:
		b.WriteString("1 reflexão guardada")
	default:
		fmt.Fprintf(&b, "%d reflexões guardadas", m.journalCount)
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Destaque da Fé"))
	b.WriteString("\n")
	b.WriteString(selectedStyle.Render("São Miguel Arcanjo"))
	b.WriteString(subtleStyle.Render(" · Defesa e Proteção Espiritual"))
	b.WriteString("\n\n")

	b.WriteString(subtleStyle.Render("enter abrir destaque • r atualizar liturgia"))
	return indent(b.String(), 2)
}

func (m homeModel) cardWidth() int {
	if m.common.width == 0 {
		return 60
	}
	return max(20, min(72, m.common.width-8))
}

// liturgyCard renders a liturgical day in its colours.
func liturgyCard(day liturgy.Day, date string, loading bool, spinner string, width int) string {
	if loading {
		return cardStyle.Width(width).Render(spinner + " Consultando a liturgia...")
	}

	info := liturgy.Palette(day.Liturgical())
	badge := lipgloss.NewStyle().
		Foreground(info.Foreground).
		Background(info.Background).
		Bold(true).
		Padding(0, 1).
		Render(info.Label)

	var b strings.Builder
	b.WriteString(subtleStyle.Render(date))
	b.WriteString("  ")
	b.WriteString(badge)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(day.Saint))
	b.WriteString("\n")
	b.WriteString(day.Season)
	b.WriteString("\n\n")
	b.WriteString(italicStyle.Render(day.Message))

	return cardStyle.BorderForeground(info.Foreground).Width(width).Render(b.String())
}
