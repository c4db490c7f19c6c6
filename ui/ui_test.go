package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/liturgy"
	"github.com/feeoracao/oracao/internal/share"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/pkg/tts"
)

type fakeAudio struct {
	mu      sync.Mutex
	state   tts.State
	toggled []string
	stops   int
	closed  bool
	err     error
	changes chan tts.State
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{changes: make(chan tts.State, 16)}
}

func (f *fakeAudio) Toggle(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, text)
	if f.err != nil {
		return f.err
	}
	if f.state == tts.StatePlaying {
		f.state = tts.StateIdle
	} else {
		f.state = tts.StatePlaying
	}
	return nil
}

func (f *fakeAudio) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.state = tts.StateIdle
}

func (f *fakeAudio) State() tts.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeAudio) Changes() <-chan tts.State { return f.changes }

func (f *fakeAudio) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type fakeContent struct{}

func (fakeContent) Reflection(ctx context.Context, title string) string {
	return "Reflexão sobre " + title
}

func (fakeContent) DailyInfo(ctx context.Context, date string) liturgy.Day {
	return liturgy.Day{Saint: "Santo de " + date, Season: "Tempo Comum", Color: "verde", Message: "Paz."}
}

type fakeIcons struct {
	uri string
	err error
}

func (f fakeIcons) Stored(kind gemini.IconKind) (string, bool) { return f.uri, f.uri != "" }

func (f fakeIcons) Get(ctx context.Context, kind gemini.IconKind) (string, error) {
	return f.uri, f.err
}

func (f fakeIcons) Regenerate(ctx context.Context, kind gemini.IconKind) (string, error) {
	return f.uri, f.err
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type testEnv struct {
	model     model
	audio     *fakeAudio
	clipboard *fakeClipboard
	journal   *journal.Journal
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ds, err := store.NewDiskStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	t.Cleanup(func() { _ = ds.Close() })

	env := &testEnv{
		audio:     newFakeAudio(),
		clipboard: &fakeClipboard{},
		journal:   journal.New(ds),
	}
	svc := Services{
		Catalog:   catalog.Default(),
		Journal:   env.journal,
		Content:   fakeContent{},
		Icons:     fakeIcons{uri: "data:image/png;base64,iVBORw=="},
		Audio:     env.audio,
		Clipboard: env.clipboard,
	}
	env.model = newModel(context.Background(), Config{GlamourStyle: "dark"}, svc)
	env.send(t, tea.WindowSizeMsg{Width: 100, Height: 40})
	return env
}

// send feeds msg to the model and returns the resulting command.
func (e *testEnv) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	m, cmd := e.model.Update(msg)
	e.model = m.(model)
	return cmd
}

func (e *testEnv) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = e.send(t, key(k))
	}
	return cmd
}

// run executes cmd and the commands of any batch it returns.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (e *testEnv) openFeatured(t *testing.T) {
	t.Helper()
	for _, msg := range run(e.press(t, "enter")) {
		e.send(t, msg)
	}
	if e.model.view != viewPrayerDetail {
		t.Fatalf("Expected prayer detail, got %s", e.model.view)
	}
}

func TestViewNames(t *testing.T) {
	tests := []struct {
		v      view
		name   string
		parent view
		tab    view
	}{
		{viewHome, "home", viewHome, viewHome},
		{viewPrayers, "prayers", viewHome, viewPrayers},
		{viewPrayerDetail, "prayer_detail", viewPrayers, viewPrayers},
		{viewRosaryGuide, "rosary_guide", viewRosaries, viewRosaries},
		{viewCalendar, "calendar", viewHome, viewCalendar},
		{viewAbout, "about", viewHome, viewAbout},
	}
	for _, tt := range tests {
		if tt.v.String() != tt.name || tt.v.parent() != tt.parent || tt.v.tab() != tt.tab {
			t.Errorf("%s: parent %s tab %s", tt.v, tt.v.parent(), tt.v.tab())
		}
	}
}

func TestNavigationStopsAudio(t *testing.T) {
	env := newTestEnv(t)

	for _, k := range []string{"2", "3", "4", "5", "a", "1"} {
		env.press(t, k)
	}
	if env.model.view != viewHome {
		t.Errorf("Expected home, got %s", env.model.view)
	}
	if env.audio.stops != 6 {
		t.Errorf("Expected audio stopped on every navigation, got %d stops", env.audio.stops)
	}
}

func TestOpenPrayerLoadsReflection(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)

	p := env.model.pager.prayer
	if p.ID != featuredPrayerID {
		t.Errorf("Expected %s, got %s", featuredPrayerID, p.ID)
	}
	if env.model.pager.reflectionLoading {
		t.Error("reflection should have loaded")
	}
	if env.model.pager.reflection != "Reflexão sobre "+p.Title {
		t.Errorf("unexpected reflection %q", env.model.pager.reflection)
	}
}

func TestStaleReflectionDropped(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)

	env.send(t, reflectionMsg{prayerID: "pai-nosso", text: "outra"})
	if env.model.pager.reflection == "outra" {
		t.Error("reflection of another prayer must be dropped")
	}
}

func TestEscGoesBack(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)

	env.press(t, "esc")
	if env.model.view != viewPrayers {
		t.Errorf("Expected prayers, got %s", env.model.view)
	}
	env.press(t, "esc")
	if env.model.view != viewHome {
		t.Errorf("Expected home, got %s", env.model.view)
	}
}

func TestSpaceTogglesAudio(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)

	for _, msg := range run(env.press(t, " ")) {
		env.send(t, msg)
	}
	if len(env.audio.toggled) != 1 || env.audio.toggled[0] != env.model.pager.prayer.Content {
		t.Fatalf("Expected the prayer content to be toggled, got %v", env.audio.toggled)
	}
	if env.model.audio != tts.StatePlaying {
		t.Errorf("Expected playing, got %s", env.model.audio)
	}
	if !strings.Contains(env.model.View(), "Parar") {
		t.Error("Expected the stop indicator while playing")
	}

	env.press(t, "esc")
	if env.audio.State() != tts.StateIdle {
		t.Error("leaving the prayer must stop audio")
	}
}

func TestAudioFailureShowsNotice(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)
	env.audio.err = errors.New("sem rede")

	for _, msg := range run(env.press(t, " ")) {
		env.send(t, msg)
	}
	if env.model.statusMessage.message != audioUnavailableMessage || !env.model.statusMessage.isError {
		t.Errorf("unexpected status %+v", env.model.statusMessage)
	}
	if env.model.audio != tts.StateIdle {
		t.Errorf("Expected idle after failure, got %s", env.model.audio)
	}
}

func TestAudioStateChanges(t *testing.T) {
	env := newTestEnv(t)

	env.send(t, audioStateMsg{state: tts.StateLoading, ok: true})
	if env.model.audio != tts.StateLoading || !env.model.loading() {
		t.Error("Expected loading state to show a spinner")
	}

	env.send(t, audioStateMsg{ok: false})
	if env.model.audio != tts.StateLoading {
		t.Error("closed channel must not change state")
	}
}

func TestStatusMessageTimeout(t *testing.T) {
	env := newTestEnv(t)

	first := env.model.showStatusMessage(statusMessage{message: "Copiado!"})
	second := env.model.showStatusMessage(statusMessage{message: "Reflexão guardada!"})
	if first == nil || second == nil {
		t.Fatal("Expected timeout commands")
	}

	// the timeout of the replaced message arrives first
	env.send(t, statusMessageTimeoutMsg{id: env.model.statusMessageID - 1})
	if env.model.statusMessage.message != "Reflexão guardada!" {
		t.Errorf("stale timeout cleared %q", env.model.statusMessage.message)
	}

	env.send(t, statusMessageTimeoutMsg{id: env.model.statusMessageID})
	if env.model.statusMessage.message != "" {
		t.Errorf("Expected cleared status, got %q", env.model.statusMessage.message)
	}
}

func TestCopyAndShare(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)
	p := env.model.pager.prayer

	for _, msg := range run(env.press(t, "c")) {
		env.send(t, msg)
	}
	if env.clipboard.text != share.CopyText(p) {
		t.Errorf("unexpected copy %q", env.clipboard.text)
	}
	if env.model.statusMessage.message != copiedMessage {
		t.Errorf("unexpected status %q", env.model.statusMessage.message)
	}

	run(env.press(t, "s"))
	if env.clipboard.text != share.ForPrayer(p).Clipboard() {
		t.Errorf("unexpected share %q", env.clipboard.text)
	}

	env.press(t, "1")
	run(env.press(t, "s"))
	if env.clipboard.text != share.Default().Clipboard() {
		t.Errorf("Expected app share from home, got %q", env.clipboard.text)
	}
}

func TestPrayerFilter(t *testing.T) {
	env := newTestEnv(t)
	env.press(t, "2", "/")
	if !env.model.prayers.filtering {
		t.Fatal("Expected filtering")
	}

	// keys go to the filter, not to navigation
	env.press(t, "a", "v", "e")
	if env.model.view != viewPrayers {
		t.Fatalf("typing must not navigate, got %s", env.model.view)
	}

	found := false
	for _, p := range env.model.prayers.items {
		if p.ID == "ave-maria" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected Ave Maria in %d results", len(env.model.prayers.items))
	}

	env.press(t, "enter")
	if env.model.prayers.filtering {
		t.Error("enter should end filtering")
	}
	run(env.press(t, "enter"))
	if env.model.view != viewPrayerDetail {
		t.Errorf("Expected prayer detail, got %s", env.model.view)
	}
}

func TestJournalEditor(t *testing.T) {
	env := newTestEnv(t)
	env.press(t, "4", "n")
	if !env.model.journal.editing {
		t.Fatal("Expected editor")
	}

	env.press(t, "G", "r", "a", "t", "i", "d", "ã", "o", "tab", "A", "m", "é", "m")
	msgs := run(env.press(t, "ctrl+s"))
	if len(msgs) != 1 {
		t.Fatalf("Expected a save result, got %v", msgs)
	}
	env.send(t, msgs[0])

	entries, err := env.journal.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Title != "Gratidão" || entries[0].Content != "Amém" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if env.model.journal.editing {
		t.Error("editor should close after saving")
	}
}

func TestJournalEditorRejectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	env.press(t, "4", "n")

	if cmd := env.press(t, "ctrl+s"); cmd != nil {
		t.Error("empty reflection must not be saved")
	}
	if !errors.Is(env.model.journal.err, journal.ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", env.model.journal.err)
	}
	env.press(t, "esc")
	if env.model.journal.editing || env.model.view != viewJournal {
		t.Error("esc should cancel the editor only")
	}
}

func TestJournalLinkedToPrayer(t *testing.T) {
	env := newTestEnv(t)
	env.openFeatured(t)
	p := env.model.pager.prayer

	env.press(t, "j")
	if env.model.view != viewJournal || !env.model.journal.editing {
		t.Fatalf("Expected journal editor, got %s", env.model.view)
	}
	if env.model.journal.titleInput.Value() != p.Title {
		t.Errorf("Expected title prefilled, got %q", env.model.journal.titleInput.Value())
	}

	env.press(t, "P", "a", "z")
	for _, msg := range run(env.press(t, "ctrl+s")) {
		env.send(t, msg)
	}

	entries, _ := env.journal.List()
	if len(entries) != 1 || entries[0].LinkedPrayerID != p.ID {
		t.Fatalf("Expected entry linked to %s, got %+v", p.ID, entries)
	}
}

func TestJournalDelete(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.journal.Add("", "Primeira"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.journal.Add("", "Segunda"); err != nil {
		t.Fatal(err)
	}

	for _, msg := range run(env.press(t, "4")) {
		env.send(t, msg)
	}
	if len(env.model.journal.entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(env.model.journal.entries))
	}
	if !strings.Contains(env.model.View(), journal.DefaultTitle) {
		t.Error("Expected default titles in the list")
	}

	for _, msg := range run(env.press(t, "d")) {
		env.send(t, msg)
	}
	entries, _ := env.journal.List()
	if len(entries) != 1 || entries[0].Content != "Primeira" {
		t.Errorf("Expected the newest entry deleted, got %+v", entries)
	}
	if env.model.home.journalCount != 1 {
		t.Errorf("Expected home count 1, got %d", env.model.home.journalCount)
	}
}

func TestStoreChangeReloadsJournal(t *testing.T) {
	env := newTestEnv(t)
	events := make(chan string, 1)
	env.model.common.svc.StoreEvents = events

	if _, err := env.journal.Add("", "De outro processo"); err != nil {
		t.Fatal(err)
	}

	cmd := env.send(t, storeChangedMsg{key: store.KeyJournal})
	close(events)
	for _, msg := range run(cmd) {
		env.send(t, msg)
	}
	if len(env.model.journal.entries) != 1 {
		t.Errorf("Expected reloaded journal, got %d entries", len(env.model.journal.entries))
	}
}

func TestDailyInfo(t *testing.T) {
	env := newTestEnv(t)
	for _, msg := range run(loadDailyInfoCmd(env.model.common, "", true)) {
		env.send(t, msg)
	}

	today := todayString()
	if env.model.home.loading || env.model.home.day.Saint != "Santo de "+today {
		t.Errorf("unexpected home day %+v", env.model.home.day)
	}
	if env.model.calendar.loading || env.model.calendar.info.Saint != "Santo de "+today {
		t.Errorf("unexpected calendar day %+v", env.model.calendar.info)
	}
	if !strings.Contains(env.model.View(), "Tempo Comum") {
		t.Error("Expected the liturgy card on home")
	}
}

func TestCalendarSelection(t *testing.T) {
	c := newCalendarModel(&commonModel{}, time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local))

	steps := []struct {
		key  string
		want int
	}{
		{"left", 18},
		{"up", 11},
		{"g", 1},
		{"left", 1},
		{"G", 31},
		{"down", 31},
		{"right", 31},
	}
	for _, s := range steps {
		c.update(key(s.key))
		if c.selected != s.want {
			t.Fatalf("after %s: selected %d, want %d", s.key, c.selected, s.want)
		}
	}

	c.loading = false
	date, load := c.update(key("enter"))
	if !load || date != "31/10/2026" {
		t.Errorf("update(enter) = %q, %v", date, load)
	}
	if _, load := c.update(key("enter")); load {
		t.Error("enter while loading must not reload")
	}

	c.setDay("30/10/2026", liturgy.Fallback())
	if !c.loading {
		t.Error("info for another day must be ignored")
	}
	c.setDay("31/10/2026", liturgy.Fallback())
	if c.loading || c.info != liturgy.Fallback() {
		t.Error("Expected info for the selected day")
	}
}

func TestCalendarMoveWhileLoading(t *testing.T) {
	c := newCalendarModel(&commonModel{}, time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local))
	c.setDay("15/10/2026", liturgy.Fallback())

	date, load := c.update(key("enter"))
	if !load || date != "15/10/2026" {
		t.Fatalf("update(enter) = %q, %v", date, load)
	}
	c.update(key("right"))

	day := liturgy.Day{Saint: "Santa Teresa de Ávila", Season: "Tempo Comum", Color: "branco", Message: "Só Deus basta."}
	c.setDay("15/10/2026", day)
	if c.loading {
		t.Fatal("the answer for the requested day must end loading")
	}
	if c.date != "15/10/2026" || c.info != day {
		t.Errorf("Expected the 15/10 info to be kept, got %s %+v", c.date, c.info)
	}
	if !strings.Contains(c.view(""), "enter para consultar 16/10/2026") {
		t.Error("Expected a hint to load the selected day")
	}

	date, load = c.update(key("enter"))
	if !load || date != "16/10/2026" {
		t.Errorf("update(enter) = %q, %v after moving", date, load)
	}
}

func TestCalendarMoveBeforeInitialLoad(t *testing.T) {
	c := newCalendarModel(&commonModel{}, time.Date(2026, time.October, 19, 10, 0, 0, 0, time.Local))
	c.update(key("left"))

	c.setDay("19/10/2026", liturgy.Fallback())
	if c.loading {
		t.Fatal("the initial answer must end loading after the selection moved")
	}
	if date, load := c.update(key("enter")); !load || date != "18/10/2026" {
		t.Errorf("update(enter) = %q, %v", date, load)
	}
}

func TestMonthTitle(t *testing.T) {
	tests := map[time.Month]string{
		time.March:    "Março de 2026",
		time.October:  "Outubro de 2026",
		time.December: "Dezembro de 2026",
	}
	for month, want := range tests {
		if got := monthTitle(time.Date(2026, month, 1, 0, 0, 0, 0, time.UTC)); got != want {
			t.Errorf("monthTitle(%s) = %q, want %q", month, got, want)
		}
	}
}

func TestRosaryGuide(t *testing.T) {
	env := newTestEnv(t)
	env.press(t, "3", "down", "enter")
	if env.model.view != viewRosaryGuide {
		t.Fatalf("Expected rosary guide, got %s", env.model.view)
	}
	r := env.model.rosaries.selected
	if r.ID != env.model.common.svc.Catalog.Rosaries()[1].ID {
		t.Errorf("unexpected rosary %s", r.ID)
	}

	for range r.Steps {
		env.press(t, "down")
	}
	if env.model.rosaries.step != len(r.Steps)-1 {
		t.Errorf("Expected last step, got %d", env.model.rosaries.step)
	}

	run(env.press(t, "s"))
	if env.clipboard.text != share.ForRosary(r).Clipboard() {
		t.Errorf("unexpected share %q", env.clipboard.text)
	}
}

func TestAboutIcons(t *testing.T) {
	env := newTestEnv(t)
	for _, msg := range run(loadIconsCmd(env.model.common)) {
		env.send(t, msg)
	}
	env.press(t, "a")

	if !strings.Contains(env.model.View(), "image/png") {
		t.Error("Expected icon status in about view")
	}

	msgs := run(env.press(t, "i"))
	if !env.model.about.generating {
		t.Error("Expected generating state")
	}
	for _, msg := range msgs {
		env.send(t, msg)
	}
	if env.model.about.generating {
		t.Error("generation should have finished")
	}

	env.press(t, "p")
	if env.model.statusMessage.message != supportMessage {
		t.Errorf("unexpected status %q", env.model.statusMessage.message)
	}
}

func TestQuitClosesAudio(t *testing.T) {
	env := newTestEnv(t)
	cmd := env.press(t, "q")
	if !env.audio.closed {
		t.Error("Expected audio closed on quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected quit")
	}
}

func TestClampHeight(t *testing.T) {
	if got := clampHeight("a\nb\nc", 2); got != "a\nb" {
		t.Errorf("clampHeight cut = %q", got)
	}
	if got := clampHeight("a", 3); got != "a\n\n" {
		t.Errorf("clampHeight pad = %q", got)
	}
	if clampHeight("a", 0) != "" {
		t.Error("zero height must render nothing")
	}
}

func TestIconStatus(t *testing.T) {
	if iconStatus("") != "Nenhum Ícone" {
		t.Error("missing icon")
	}
	if iconStatus("garbage") != "Ícone inválido" {
		t.Error("invalid icon")
	}
	if got := iconStatus("data:image/png;base64,iVBORw=="); got != "image/png · 4 B" {
		t.Errorf("iconStatus() = %q", got)
	}
}
