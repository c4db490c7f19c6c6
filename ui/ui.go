// Package ui provides the main UI for the oracao application.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	te "github.com/muesli/termenv"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/share"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/pkg/tts"
)

const (
	statusMessageTimeout = time.Second * 3 // how long to show status messages like "copiado!"
	ellipsis             = "…"

	audioUnavailableMessage = "Desculpe, não foi possível gerar o áudio no momento."
	copiedMessage           = "Texto copiado!"
	sharedMessage           = "Conteúdo copiado para a área de transferência!"
	supportMessage          = "Obrigado pelo seu interesse em apoiar! Esta funcionalidade de doação está sendo preparada com muito carinho por Tiago Santana. Em breve você poderá contribuir para a manutenção desta obra."

	featuredPrayerID = "sao-miguel"
)

var config Config

// tabKeys jump straight to a tab from anywhere.
var tabKeys = map[string]view{
	"1": viewHome,
	"2": viewPrayers,
	"3": viewRosaries,
	"4": viewJournal,
	"5": viewCalendar,
	"a": viewAbout,
}

// NewProgram returns a new Tea program.
func NewProgram(ctx context.Context, cfg Config, svc Services) *tea.Program {
	log.Debug(
		"Starting oracao",
		"glamour",
		cfg.GlamourEnabled,
		"mock_audio",
		cfg.MockAudio,
	)

	config = cfg
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(newModel(ctx, cfg, svc), opts...)
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// statusMessageTimeoutMsg clears the status message it was scheduled for.
type statusMessageTimeoutMsg struct{ id int }

type statusMessage struct {
	message string
	isError bool
}

// view is the screen currently shown.
type view int

const (
	viewHome view = iota
	viewPrayers
	viewRosaries
	viewJournal
	viewCalendar
	viewAbout
	viewPrayerDetail
	viewRosaryGuide
)

func (v view) String() string {
	return map[view]string{
		viewHome:         "home",
		viewPrayers:      "prayers",
		viewRosaries:     "rosaries",
		viewJournal:      "journal",
		viewCalendar:     "calendar",
		viewAbout:        "about",
		viewPrayerDetail: "prayer_detail",
		viewRosaryGuide:  "rosary_guide",
	}[v]
}

// parent is where esc leads from v.
func (v view) parent() view {
	switch v {
	case viewPrayerDetail:
		return viewPrayers
	case viewRosaryGuide:
		return viewRosaries
	default:
		return viewHome
	}
}

// tab is the bottom navigation entry v belongs to.
func (v view) tab() view {
	switch v {
	case viewPrayerDetail:
		return viewPrayers
	case viewRosaryGuide:
		return viewRosaries
	default:
		return v
	}
}

// Common stuff we'll need to access in all models.
type commonModel struct {
	cfg    Config
	svc    Services
	ctx    context.Context
	width  int
	height int
}

// bodyHeight is the room left for a view between the tabs and the status bar.
func (c commonModel) bodyHeight() int {
	return max(0, c.height-tabBarHeight-statusBarHeight)
}

type model struct {
	common   *commonModel
	view     view
	fatalErr error

	// Sub-models
	home     homeModel
	prayers  prayersModel
	pager    pagerModel
	rosaries rosariesModel
	calendar calendarModel
	journal  journalModel
	about    aboutModel

	audio    tts.State
	spinner  spinner.Model
	spinning bool

	statusMessage   statusMessage
	statusMessageID int
}

func newModel(ctx context.Context, cfg Config, svc Services) model {
	if cfg.GlamourStyle == "" || cfg.GlamourStyle == styles.AutoStyle {
		if te.HasDarkBackground() {
			cfg.GlamourStyle = styles.DarkStyle
		} else {
			cfg.GlamourStyle = styles.LightStyle
		}
	}
	if svc.Catalog == nil {
		svc.Catalog = catalog.Default()
	}
	if svc.Clipboard == nil {
		svc.Clipboard = share.SystemClipboard{}
	}

	common := &commonModel{
		cfg: cfg,
		svc: svc,
		ctx: ctx,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return model{
		common:   common,
		view:     viewHome,
		home:     newHomeModel(common),
		prayers:  newPrayersModel(common),
		pager:    newPagerModel(common),
		rosaries: newRosariesModel(common),
		calendar: newCalendarModel(common, time.Now()),
		journal:  newJournalModel(common),
		about:    newAboutModel(common),
		spinner:  sp,
	}
}

func (m model) Init() tea.Cmd {
	log.Debug("Init() called", "view", m.view)
	cmds := []tea.Cmd{
		m.spinner.Tick,
		loadDailyInfoCmd(m.common, "", true),
		loadJournalCmd(m.common),
		loadIconsCmd(m.common),
	}
	if m.common.svc.Audio != nil {
		cmds = append(cmds, listenAudioCmd(m.common.svc.Audio.Changes()))
	}
	if m.common.svc.StoreEvents != nil {
		cmds = append(cmds, watchStoreCmd(m.common.svc.StoreEvents))
	}
	return tea.Batch(cmds...)
}

// textInputFocused reports whether keys should go straight to an input.
func (m model) textInputFocused() bool {
	switch m.view { //nolint:exhaustive
	case viewPrayers:
		return m.prayers.filtering
	case viewJournal:
		return m.journal.editing
	}
	return false
}

// loading reports whether anything on screen waits on a spinner.
func (m model) loading() bool {
	return m.home.loading || m.pager.reflectionLoading || m.calendar.loading ||
		m.about.generating || m.audio == tts.StateLoading
}

// spin starts the spinner if it is not already ticking.
func (m *model) spin() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// navigate switches views. Audio never survives a navigation.
func (m *model) navigate(to view) tea.Cmd {
	m.stopAudio()
	log.Debug("Navigate", "from", m.view, "to", to)
	m.view = to

	switch to { //nolint:exhaustive
	case viewJournal:
		return loadJournalCmd(m.common)
	case viewPrayers:
		m.prayers.resetFilter()
	}
	return nil
}

func (m *model) stopAudio() {
	if m.common.svc.Audio != nil {
		m.common.svc.Audio.Stop()
	}
}

func (m *model) openPrayer(p catalog.Prayer) tea.Cmd {
	m.navigate(viewPrayerDetail)
	m.pager.load(p)
	return tea.Batch(
		renderPrayerCmd(m.pager),
		loadReflectionCmd(m.common, p),
		m.spin(),
	)
}

func (m *model) openRosary(r catalog.Rosary) {
	m.navigate(viewRosaryGuide)
	m.rosaries.open(r)
}

// showStatusMessage shows a message in the status bar for a few seconds.
func (m *model) showStatusMessage(msg statusMessage) tea.Cmd {
	m.statusMessage = msg
	m.statusMessageID++
	return waitForStatusMessageTimeout(m.statusMessageID)
}

func (m *model) quit() tea.Cmd {
	if m.common.svc.Audio != nil {
		log.Debug("Closing audio before quit")
		if err := m.common.svc.Audio.Close(); err != nil {
			log.Warn("Audio shutdown error", "error", err)
		}
	}
	return tea.Quit
}

// shareData is what "s" shares from the current view.
func (m model) shareData() share.Data {
	switch m.view { //nolint:exhaustive
	case viewPrayerDetail:
		return share.ForPrayer(m.pager.prayer)
	case viewRosaryGuide:
		return share.ForRosary(m.rosaries.selected)
	default:
		return share.Default()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// If there's been an error, any key exits
	if m.fatalErr != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, m.quit()
		}
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Ctrl+C always quits no matter where in the application you are.
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if msg.String() == "ctrl+z" {
			return m, tea.Suspend
		}

		// pass through all keys if we're editing text
		if m.textInputFocused() {
			break
		}

		if to, ok := tabKeys[msg.String()]; ok {
			cmd := m.navigate(to)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, m.quit()
		case "esc":
			if m.view == viewHome {
				return m, nil
			}
			cmd := m.navigate(m.view.parent())
			return m, cmd
		case "s":
			data := m.shareData()
			return m, copyCmd(m.common, data.Clipboard(), sharedMessage)
		}

	// Window size is received when starting up and on every resize
	case tea.WindowSizeMsg:
		m.common.width = msg.Width
		m.common.height = msg.Height
		m.pager.setSize(msg.Width, m.common.bodyHeight())
		m.journal.setSize(msg.Width, m.common.bodyHeight())
		if m.view == viewPrayerDetail {
			cmds = append(cmds, renderPrayerCmd(m.pager))
		}

	case errMsg:
		m.fatalErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMessageTimeoutMsg:
		// a newer message restarted the timeout
		if msg.id == m.statusMessageID {
			m.statusMessage = statusMessage{}
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			log.Error("Copy failed", "error", msg.err)
			cmd := m.showStatusMessage(statusMessage{message: "Não foi possível copiar.", isError: true})
			return m, cmd
		}
		cmd := m.showStatusMessage(statusMessage{message: msg.message})
		return m, cmd

	case audioStateMsg:
		if !msg.ok {
			return m, nil
		}
		m.audio = msg.state
		cmds = append(cmds, listenAudioCmd(m.common.svc.Audio.Changes()))
		if m.audio == tts.StateLoading {
			cmds = append(cmds, m.spin())
		}
		return m, tea.Batch(cmds...)

	case audioResultMsg:
		if m.common.svc.Audio != nil {
			m.audio = m.common.svc.Audio.State()
		}
		if msg.err != nil {
			cmd := m.showStatusMessage(statusMessage{message: audioUnavailableMessage, isError: true})
			return m, cmd
		}
		return m, nil

	case storeChangedMsg:
		log.Debug("Store changed", "key", msg.key)
		cmds = append(cmds, watchStoreCmd(m.common.svc.StoreEvents))
		switch msg.key {
		case store.KeyJournal:
			cmds = append(cmds, loadJournalCmd(m.common))
		case store.KeyAppIcon, store.KeySupportIcon:
			cmds = append(cmds, loadIconsCmd(m.common))
		}
		return m, tea.Batch(cmds...)

	case dailyInfoMsg:
		if msg.today {
			m.home.setDay(msg.day)
		}
		m.calendar.setDay(msg.date, msg.day)
		return m, nil

	case reflectionMsg:
		if m.pager.setReflection(msg.prayerID, msg.text) {
			return m, renderPrayerCmd(m.pager)
		}
		return m, nil

	case journalLoadedMsg:
		if msg.err != nil {
			log.Error("Journal unavailable", "error", msg.err)
			cmds = append(cmds, m.showStatusMessage(statusMessage{message: "Não foi possível ler o diário.", isError: true}))
		}
		m.journal.setEntries(msg.entries)
		m.home.journalCount = len(msg.entries)
		return m, tea.Batch(cmds...)

	case journalSavedMsg:
		var cmd tea.Cmd
		m.journal, cmd = m.journal.update(msg)
		cmds = append(cmds, cmd)
		if msg.err == nil {
			cmds = append(cmds, m.showStatusMessage(statusMessage{message: "Reflexão guardada!"}))
		}
		return m, tea.Batch(cmds...)

	case iconsLoadedMsg:
		m.about.setIcons(msg)
		return m, nil

	case iconGeneratedMsg:
		m.about.generating = false
		if msg.err != nil {
			log.Error("Icon generation failed", "kind", msg.kind, "error", msg.err)
			cmd := m.showStatusMessage(statusMessage{message: "Não foi possível criar o ícone.", isError: true})
			return m, cmd
		}
		m.about.setIcon(msg.kind, msg.uri)
		cmd := m.showStatusMessage(statusMessage{message: "Ícone criado!"})
		return m, cmd
	}

	// Process the current view
	var cmd tea.Cmd
	switch m.view {
	case viewHome:
		cmd = m.updateHome(msg)
	case viewPrayers:
		cmd = m.updatePrayers(msg)
	case viewPrayerDetail:
		cmd = m.updatePager(msg)
	case viewRosaries:
		cmd = m.updateRosaries(msg)
	case viewRosaryGuide:
		m.rosaries.updateGuide(msg)
	case viewCalendar:
		cmd = m.updateCalendar(msg)
	case viewJournal:
		cmd = m.updateJournal(msg)
	case viewAbout:
		cmd = m.updateAbout(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) updateHome(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "enter":
		p, err := m.common.svc.Catalog.Prayer(featuredPrayerID)
		if err != nil {
			return nil
		}
		return m.openPrayer(p)
	case "r":
		m.home.loading = true
		return tea.Batch(loadDailyInfoCmd(m.common, "", true), m.spin())
	}
	return nil
}

func (m *model) updatePrayers(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	var selected *catalog.Prayer
	m.prayers, cmd, selected = m.prayers.update(msg)
	if selected != nil {
		return tea.Batch(cmd, m.openPrayer(*selected))
	}
	return cmd
}

func (m *model) updatePager(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case " ", "space":
			if m.common.svc.Audio == nil {
				return m.showStatusMessage(statusMessage{message: audioUnavailableMessage, isError: true})
			}
			return tea.Batch(toggleAudioCmd(m.common, m.pager.prayer.Content), m.spin())
		case "c":
			return copyCmd(m.common, share.CopyText(m.pager.prayer), copiedMessage)
		case "j":
			p := m.pager.prayer
			return tea.Batch(m.navigate(viewJournal), m.journal.startEditing(p))
		}
	}

	var cmd tea.Cmd
	m.pager, cmd = m.pager.update(msg)
	return cmd
}

func (m *model) updateRosaries(msg tea.Msg) tea.Cmd {
	var selected *catalog.Rosary
	m.rosaries, selected = m.rosaries.update(msg)
	if selected != nil {
		m.openRosary(*selected)
	}
	return nil
}

func (m *model) updateCalendar(msg tea.Msg) tea.Cmd {
	date, load := m.calendar.update(msg)
	if !load {
		return nil
	}
	return tea.Batch(loadDailyInfoCmd(m.common, date, date == m.home.today), m.spin())
}

func (m *model) updateJournal(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.journal, cmd = m.journal.update(msg)
	return cmd
}

func (m *model) updateAbout(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "i":
		if m.about.generating {
			return nil
		}
		m.about.generating = true
		return tea.Batch(generateIconCmd(m.common, gemini.AppIcon), m.spin())
	case "p":
		return m.showStatusMessage(statusMessage{message: supportMessage})
	}
	return nil
}

func (m model) View() string {
	if m.fatalErr != nil {
		return errorView(m.fatalErr, true)
	}

	var body string
	switch m.view {
	case viewHome:
		body = m.home.view(m.spinner.View())
	case viewPrayers:
		body = m.prayers.view()
	case viewPrayerDetail:
		body = m.pager.view()
	case viewRosaries:
		body = m.rosaries.listView()
	case viewRosaryGuide:
		body = m.rosaries.guideView()
	case viewCalendar:
		body = m.calendar.view(m.spinner.View())
	case viewJournal:
		body = m.journal.view()
	case viewAbout:
		body = m.about.view(m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(m.tabBarView())
	b.WriteRune('\n')
	b.WriteString(clampHeight(body, m.common.bodyHeight()))
	b.WriteRune('\n')
	m.statusBarView(&b)
	return b.String()
}

func errorView(err error, fatal bool) string {
	exitMsg := "pressione qualquer tecla para "
	if fatal {
		exitMsg += "sair"
	} else {
		exitMsg += "voltar"
	}
	s := fmt.Sprintf("%s\n\n%v\n\n%s",
		errorTitleStyle.Render("ERRO"),
		err,
		subtleStyle.Render(exitMsg),
	)
	return "\n" + indent(s, 3)
}

// COMMANDS

func waitForStatusMessageTimeout(id int) tea.Cmd {
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{id: id}
	})
}

// ETC

// clampHeight pads or cuts s to exactly h lines.
func clampHeight(s string, h int) string {
	if h <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Lightweight version of reflow's indent function.
func indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}
	l := strings.Split(s, "\n")
	b := strings.Builder{}
	i := strings.Repeat(" ", n)
	for _, v := range l {
		fmt.Fprintf(&b, "%s%s\n", i, v)
	}
	return b.String()
}
