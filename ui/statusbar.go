package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/feeoracao/oracao/pkg/tts"
)

const (
	statusBarHeight = 1
	tabBarHeight    = 1
)

var tabs = []struct {
	key   string
	label string
	view  view
}{
	{"1", "Início", viewHome},
	{"2", "Orações", viewPrayers},
	{"3", "Terços", viewRosaries},
	{"4", "Diário", viewJournal},
	{"5", "Liturgia", viewCalendar},
}

func (m model) tabBarView() string {
	var b strings.Builder
	active := m.view.tab()
	for _, t := range tabs {
		label := t.key + " " + t.label
		if t.view == active {
			b.WriteString(activeTabStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	if active == viewAbout {
		b.WriteString(activeTabStyle.Render("a Sobre"))
	} else {
		b.WriteString(tabStyle.Render("a Sobre"))
	}
	return truncate.StringWithTail(b.String(), uint(max(0, m.common.width)), ellipsis) //nolint:gosec
}

// audioView is the listen/stop indicator of the prayer detail.
func (m model) audioView() string {
	switch m.audio {
	case tts.StateLoading:
		return audioIdleStyle.Render(m.spinner.View() + " Gerando áudio")
	case tts.StatePlaying:
		return audioPlayingStyle.Render("■ Parar")
	default:
		return audioIdleStyle.Render("▶ Ouvir Oração")
	}
}

func (m model) helpNote() string {
	switch m.view {
	case viewPrayers:
		if m.prayers.filtering {
			return "enter confirmar • esc limpar"
		}
		return "/ buscar • enter abrir"
	case viewPrayerDetail:
		return "espaço ouvir • c copiar • s compartilhar • j diário"
	case viewRosaries:
		return "enter abrir"
	case viewRosaryGuide:
		return "↑/↓ passo • s compartilhar"
	case viewCalendar:
		return "←/→/↑/↓ dia • enter consultar"
	case viewJournal:
		if m.journal.editing {
			return "tab alternar • ctrl+s guardar • esc cancelar"
		}
		return "n nova • d apagar"
	case viewAbout:
		return "i criar ícone • p apoiar"
	default:
		return "q sair"
	}
}

func (m model) statusBarView(b *strings.Builder) {
	showStatusMessage := m.statusMessage.message != ""

	logo := logoView()

	var audio string
	if m.view == viewPrayerDetail {
		audio = m.audioView()
	}

	help := statusBarHelpStyle(" " + m.helpNote() + " ")

	note := m.view.title()
	if m.view == viewPrayerDetail {
		note = fmt.Sprintf("%s %3.f%%", m.pager.prayer.Title, m.pager.scrollPercent()*100)
	}
	if showStatusMessage {
		note = m.statusMessage.message
	}
	note = truncate.StringWithTail(" "+note+" ", uint(max(0, //nolint:gosec
		m.common.width-
			ansi.PrintableRuneWidth(logo)-
			ansi.PrintableRuneWidth(audio)-
			ansi.PrintableRuneWidth(help),
	)), ellipsis)

	style := statusBarNoteStyle
	if showStatusMessage {
		style = statusBarMessageStyle
		if m.statusMessage.isError {
			style = statusBarErrorStyle
		}
	}
	note = style(note)

	// Empty space
	padding := max(0,
		m.common.width-
			ansi.PrintableRuneWidth(logo)-
			ansi.PrintableRuneWidth(note)-
			ansi.PrintableRuneWidth(audio)-
			ansi.PrintableRuneWidth(help),
	)
	emptySpace := style(strings.Repeat(" ", padding))

	fmt.Fprintf(b, "%s%s%s%s%s",
		logo,
		note,
		emptySpace,
		audio,
		help,
	)
}

// title is the top bar title of each view.
func (v view) title() string {
	switch v {
	case viewHome:
		return "Bem-vindo"
	case viewPrayers:
		return "Oratório"
	case viewRosaries:
		return "Terços"
	case viewJournal:
		return "Meu Diário"
	case viewCalendar:
		return "Liturgia"
	case viewAbout:
		return "Lançamento"
	case viewPrayerDetail:
		return "Oração"
	case viewRosaryGuide:
		return "Guia do Terço"
	default:
		return ""
	}
}
