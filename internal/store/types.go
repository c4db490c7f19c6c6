package store

import "errors"

// Keys used by the application.
const (
	KeyJournal     = "prayer_journal"
	KeyAppIcon     = "app_icon"
	KeySupportIcon = "support_icon"
)

var (
	// ErrItemTooLarge is returned when an item exceeds the cache capacity
	ErrItemTooLarge = errors.New("item too large for cache")

	// ErrCorrupted is returned when a stored file cannot be decoded
	ErrCorrupted = errors.New("stored data corrupted")

	// ErrEmptyKey is returned for an empty key
	ErrEmptyKey = errors.New("empty key")
)

// Store is a flat key-value persistence layer. A missing key reads as absent.
type Store interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
	Delete(key string) error
}

// Stats holds store metrics.
type Stats struct {
	Capacity  int64 // Maximum capacity in bytes, 0 when unbounded
	Size      int64 // Current size in bytes
	ItemCount int64 // Number of items

	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64 // hits / (hits + misses)
}

func (s *Stats) computeHitRate() {
	if s.Hits+s.Misses > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Hits+s.Misses)
	}
}
