package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zstd"
)

const (
	fileExt = ".kv"

	// Each file starts with a one-byte encoding tag.
	tagRaw  byte = 0
	tagZstd byte = 1

	// Values at or below this size are never compressed.
	compressThreshold = 1024
)

// DiskStore keeps one file per key under a directory. Writes go through
// a temp file and rename so concurrent readers never see partial data.
type DiskStore struct {
	basePath string

	encoder *zstd.Encoder
	decoder *zstd.Decoder

	mu    sync.RWMutex
	stats Stats
}

// NewDiskStore opens (creating if needed) a store rooted at basePath.
// A compressionLevel of 0 disables compression of new values; compressed
// values are always readable.
func NewDiskStore(basePath string, compressionLevel int) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	ds := &DiskStore{basePath: basePath}

	var err error
	if compressionLevel > 0 {
		ds.encoder, err = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(compressionLevel)))
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
	}
	ds.decoder, err = zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return ds, nil
}

// Dir returns the directory holding the store files.
func (ds *DiskStore) Dir() string {
	return ds.basePath
}

// Get reads a value. Missing and unreadable files both read as absent.
func (ds *DiskStore) Get(key string) ([]byte, bool) {
	data, err := ds.Load(key)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("Failed to read stored value", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Load reads a value and reports why it could not, os.ErrNotExist for a
// missing key.
func (ds *DiskStore) Load(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	data, err := os.ReadFile(ds.Path(key))
	if err != nil {
		ds.stats.Misses++
		return nil, err
	}

	value, err := ds.decode(data)
	if err != nil {
		ds.stats.Misses++
		return nil, err
	}

	ds.stats.Hits++
	return value, nil
}

// Put writes a value, replacing any previous one.
func (ds *DiskStore) Put(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	data := ds.encode(value)

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := writeFile(ds.Path(key), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	log.Debug("Stored value", "key", key, "size", len(value), "disk_size", len(data))
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (ds *DiskStore) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := os.Remove(ds.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Contains checks if a key exists without reading it.
func (ds *DiskStore) Contains(key string) bool {
	_, err := os.Stat(ds.Path(key))
	return err == nil
}

// Stats returns store statistics. Size and ItemCount are computed from
// the files currently on disk.
func (ds *DiskStore) Stats() Stats {
	ds.mu.RLock()
	stats := ds.stats
	ds.mu.RUnlock()

	entries, err := os.ReadDir(ds.basePath)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
				continue
			}
			if info, err := e.Info(); err == nil {
				stats.Size += info.Size()
				stats.ItemCount++
			}
		}
	}

	stats.computeHitRate()
	return stats
}

// Path returns the file that holds key.
func (ds *DiskStore) Path(key string) string {
	return filepath.Join(ds.basePath, fileName(key))
}

// Close releases the compression resources.
func (ds *DiskStore) Close() error {
	if ds.encoder != nil {
		if err := ds.encoder.Close(); err != nil {
			return err
		}
	}
	ds.decoder.Close()
	return nil
}

func (ds *DiskStore) encode(value []byte) []byte {
	if ds.encoder != nil && len(value) > compressThreshold {
		compressed := ds.encoder.EncodeAll(value, []byte{tagZstd})
		// Only use compression if it actually reduces size
		if len(compressed) < len(value)+1 {
			return compressed
		}
	}
	out := make([]byte, 0, len(value)+1)
	out = append(out, tagRaw)
	return append(out, value...)
}

func (ds *DiskStore) decode(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrCorrupted
	}

	switch data[0] {
	case tagRaw:
		return data[1:], nil
	case tagZstd:
		value, err := ds.decoder.DecodeAll(data[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
		}
		return value, nil
	default:
		return nil, ErrCorrupted
	}
}

func fileName(key string) string {
	// Use SHA256 hash of key for filename
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16]) + fileExt
}

func writeFile(path string, data []byte) error {
	// Write to temp file first, then rename (atomic on most systems)
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := file.Name()

	_, err = file.Write(data)
	closeErr := file.Close()

	if err != nil {
		os.Remove(tempPath)
		return err
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return closeErr
	}

	return os.Rename(tempPath, path)
}
