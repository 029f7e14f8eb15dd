// Package snapshot reads and writes the flat JSON files that serve content reads without the store.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// File is a snapshot file holding a JSON array of T. The parsed array is cached in memory and
// re-read whenever the file's modification time or size changes.
type File[T any] struct {
	path      string
	idOf      func(*T) string
	normalize func(map[string]any) error

	mu      sync.RWMutex
	modTime time.Time
	size    int64
	items   []T
	loaded  bool
}

// FileOption configures a File.
type FileOption func(*fileSettings)

type fileSettings struct {
	normalize func(map[string]any) error
}

// WithNormalizer rewrites every record, as a decoded JSON object, before it is bound to T.
// Snapshot files use it to accept date-only values.
func WithNormalizer(normalize func(map[string]any) error) FileOption {
	return func(s *fileSettings) {
		s.normalize = normalize
	}
}

// NewFile returns a reader for path. idOf extracts the external id used by Get.
func NewFile[T any](path string, idOf func(*T) string, opts ...FileOption) *File[T] {
	var settings fileSettings
	for _, opt := range opts {
		opt(&settings)
	}
	return &File[T]{path: path, idOf: idOf, normalize: settings.normalize}
}

func (f *File[T]) Path() string {
	return f.path
}

// List returns a copy of the records in the file, in file order.
func (f *File[T]) List(ctx context.Context) ([]T, error) {
	items, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(items))
	copy(out, items)
	return out, nil
}

// Get returns the record with the external id, or nil when the file has none.
func (f *File[T]) Get(ctx context.Context, id string) (*T, error) {
	items, err := f.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if f.idOf(&items[i]) == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *File[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot %s: %w", f.path, err)
	}

	f.mu.RLock()
	if f.loaded && info.ModTime().Equal(f.modTime) && info.Size() == f.size {
		items := f.items
		f.mu.RUnlock()
		return items, nil
	}
	f.mu.RUnlock()

	items, err := readArray[T](f.path, f.normalize)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.items = items
	f.modTime = info.ModTime()
	f.size = info.Size()
	f.loaded = true
	f.mu.Unlock()
	return items, nil
}

func readArray[T any](path string, normalize func(map[string]any) error) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	if normalize != nil {
		var records []map[string]any
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
		for i, record := range records {
			if err := normalize(record); err != nil {
				return nil, fmt.Errorf("parse snapshot %s: record %d: %w", path, i, err)
			}
		}
		if raw, err = json.Marshal(records); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
		}
	}

	items := make([]T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return items, nil
}
