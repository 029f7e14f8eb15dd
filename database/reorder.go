package database

import (
	"context"

	"github.com/rpupo63/portfolio-backend/errs"
)

// Reorder sets order = i for the record whose external id sits at position i of orderedIDs.
//
// Every position is its own single-row update; there is no transaction around the batch. A store
// failure part way through returns an error and leaves the earlier rows already renumbered.
// Concurrent reorders from two sessions can interleave.
//
// Ids missing from orderedIDs keep their order, so a partial list can leave duplicate ranks.
// Ids that match nothing are skipped without error. Touched rows get a fresh updatedAt.
// The snapshot file is not rewritten.
func (r *ContentRepo[T, P]) Reorder(ctx context.Context, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	now := r.timestamp()
	for position, id := range orderedIDs {
		err := r.db.WithContext(ctx).
			Model(P(new(T))).
			Where("id = ?", id).
			Updates(map[string]any{"sort_order": position, "updated_at": now}).Error
		if err != nil {
			r.logger.Error().Err(err).Int("position", position).Str("id", id).Msg("reorder stopped part way")
			return errs.NewDatabaseError("reorder", r.kind, err)
		}
	}

	r.logger.Info().Int("count", len(orderedIDs)).Msg("reordered")
	r.changed(ctx)
	return nil
}
