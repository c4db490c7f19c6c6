// Package store persists small named values on disk and caches speech
// payloads in memory. The disk store is a flat key-value layout with no
// eviction: one zstd-compressible file per key.
package store
