package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces the snapshot at path with items encoded as an indented JSON array.
// The file is written beside the target and renamed into place, so readers never see half a file.
func Write[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod snapshot %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}
	return nil
}

// PathFor returns the snapshot file of a collection inside dir.
func PathFor(dir, collection string) string {
	return filepath.Join(dir, collection+".json")
}

// Export lists a collection from source and writes it to its snapshot file in dir.
// It returns the path written and the number of records.
func Export[T any](ctx context.Context, dir, collection string, source func(context.Context) ([]T, error)) (string, int, error) {
	items, err := source(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("list %s: %w", collection, err)
	}

	path := PathFor(dir, collection)
	if err := Write(path, items); err != nil {
		return "", 0, err
	}
	return path, len(items), nil
}
