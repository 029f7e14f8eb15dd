package snapshot

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Loadable is a snapshot that can be read ahead of serving traffic.
type Loadable interface {
	Path() string
	Load(ctx context.Context) (int, error)
}

// Load reads the file into the in-memory cache and returns the number of records.
func (f *File[T]) Load(ctx context.Context) (int, error) {
	items, err := f.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Preload loads every snapshot concurrently and reports, by key, which ones are readable.
// An unreadable snapshot is logged and left out; it never fails the others.
func Preload(ctx context.Context, files map[string]Loadable) map[string]bool {
	var (
		mu        sync.Mutex
		available = make(map[string]bool, len(files))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for key, file := range files {
		g.Go(func() error {
			count, err := file.Load(ctx)
			if err != nil {
				log.Warn().Err(err).Str("collection", key).Str("path", file.Path()).Msg("snapshot unavailable, reading from store")
				return nil
			}
			log.Info().Str("collection", key).Str("path", file.Path()).Int("records", count).Msg("snapshot loaded")

			mu.Lock()
			available[key] = true
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return available
}
