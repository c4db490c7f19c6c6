// Package journal keeps the user's written reflections.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/feeoracao/oracao/internal/liturgy"
	"github.com/feeoracao/oracao/internal/store"
)

// DefaultTitle is used when an entry is saved without a title.
const DefaultTitle = "Reflexão Espiritual"

var (
	// ErrEmptyContent is returned when saving an entry with blank content.
	ErrEmptyContent = errors.New("reflection content is empty")
	// ErrCorrupted is returned when the stored journal cannot be parsed.
	ErrCorrupted = errors.New("stored journal is corrupted")
)

// Entry is one reflection.
type Entry struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	LinkedPrayerID string `json:"linkedPrayerId,omitempty"`
}

// Time parses the entry date. It returns false for dates that are not dd/mm/yyyy.
func (e Entry) Time() (time.Time, bool) {
	t, err := liturgy.ParseDate(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Journal reads and writes entries under store.KeyJournal, newest first.
type Journal struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

// New returns a journal backed by s.
func New(s store.Store) *Journal {
	return &Journal{store: s, now: time.Now}
}

// List returns all entries, newest first. An empty store yields no entries.
func (j *Journal) List() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.load()
}

// Add saves a new reflection at the top of the journal.
func (j *Journal) Add(title, content string) (Entry, error) {
	return j.AddLinked(title, content, "")
}

// AddLinked saves a reflection attached to a prayer.
func (j *Journal) AddLinked(title, content, prayerID string) (Entry, error) {
	if strings.TrimSpace(content) == "" {
		return Entry{}, ErrEmptyContent
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.load()
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:             uuid.NewString(),
		Date:           liturgy.FormatDate(j.now()),
		Title:          title,
		Content:        content,
		LinkedPrayerID: prayerID,
	}
	if err := j.save(append([]Entry{entry}, entries...)); err != nil {
		return Entry{}, err
	}

	log.Debug("Journal entry added", "id", entry.ID, "title", entry.Title)
	return entry, nil
}

// Delete removes the entry with the given id. Unknown ids are ignored.
func (j *Journal) Delete(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.load()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	log.Debug("Journal entry deleted", "id", id)
	return j.save(kept)
}

// Find returns the entry with the given id, or one whose id starts with it.
func (j *Journal) Find(id string) (Entry, bool) {
	entries, err := j.List()
	if err != nil {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	var match Entry
	n := 0
	for _, e := range entries {
		if id != "" && strings.HasPrefix(e.ID, id) {
			match = e
			n++
		}
	}
	return match, n == 1
}

func (j *Journal) load() ([]Entry, error) {
	data, ok := j.store.Get(store.KeyJournal)
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}
	return entries, nil
}

func (j *Journal) save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := j.store.Put(store.KeyJournal, data); err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}

var ptMagnitudes = []humanize.RelTimeMagnitude{
	{D: humanize.Day, Format: "hoje", DivBy: 1},
	{D: 2 * humanize.Day, Format: "1 dia %s", DivBy: 1},
	{D: humanize.Week, Format: "%d dias %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 semana %s", DivBy: 1},
	{D: humanize.Month, Format: "%d semanas %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 mês %s", DivBy: 1},
	{D: humanize.Year, Format: "%d meses %s", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "1 ano %s", DivBy: 1},
	{D: humanize.LongTime, Format: "%d anos %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "muito tempo %s", DivBy: 1},
}

// Age renders how long ago an entry was written, in Portuguese and at day
// precision, e.g. "3 dias atrás". Entries with unparseable dates show the
// raw date.
func Age(e Entry, now time.Time) string {
	t, ok := e.Time()
	if !ok {
		return e.Date
	}
	return humanize.CustomRelTime(dayOf(t), dayOf(now), "atrás", "depois", ptMagnitudes)
}

// dayOf drops the clock and zone so DST never shifts a day difference.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
