package database

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// Entity is the pointer constraint of a content kind: *T implementing models.Content.
type Entity[T any] interface {
	*T
	models.Content
}

// Invalidator is told when the content of a collection changed in the store.
type Invalidator interface {
	Invalidate(ctx context.Context, collection string)
}

type (
	ProjectRepo    = ContentRepo[models.Project, *models.Project]
	ExperienceRepo = ContentRepo[models.Experience, *models.Experience]
	EducationRepo  = ContentRepo[models.Education, *models.Education]
	TechStackRepo  = ContentRepo[models.TechStack, *models.TechStack]
)

// ContentRepo is the repository of one orderable content kind. Writes always go to the store;
// reads go through the snapshot first when one is configured.
type ContentRepo[T any, P Entity[T]] struct {
	db          *gorm.DB
	collection  string
	kind        string
	store       storeSource[T, P]
	snapshot    Source[T]
	invalidator Invalidator
	now         func() time.Time
	logger      zerolog.Logger
}

func NewContentRepo[T any, P Entity[T]](db *gorm.DB, collection string, snapshot Source[T], opts ...RepoOption) *ContentRepo[T, P] {
	settings := repoSettings{now: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}

	kind := P(new(T)).Kind()
	return &ContentRepo[T, P]{
		db:          db,
		collection:  collection,
		kind:        kind,
		store:       storeSource[T, P]{db: db, kind: kind},
		snapshot:    snapshot,
		invalidator: settings.invalidator,
		now:         settings.now,
		logger:      log.With().Str("repo", collection).Logger(),
	}
}

func (r *ContentRepo[T, P]) Collection() string {
	return r.collection
}

func (r *ContentRepo[T, P]) Kind() string {
	return r.kind
}

// HasSnapshot reports whether reads are served from a snapshot file.
func (r *ContentRepo[T, P]) HasSnapshot() bool {
	return r.snapshot != nil
}

// List returns every record of the kind sorted ascending by order.
func (r *ContentRepo[T, P]) List(ctx context.Context) ([]T, error) {
	if r.snapshot != nil {
		items, err := r.snapshot.List(ctx)
		if err == nil {
			sortByOrder[T, P](items)
			return items, nil
		}
		r.logger.Warn().Err(err).Msg("snapshot read failed, falling back to store")
	}
	return r.store.List(ctx)
}

// ListFromStore bypasses the snapshot. The snapshot exporter reads through it.
func (r *ContentRepo[T, P]) ListFromStore(ctx context.Context) ([]T, error) {
	return r.store.List(ctx)
}

// ListPublished returns the records the public surface may show.
func (r *ContentRepo[T, P]) ListPublished(ctx context.Context) ([]T, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]T, 0, len(items))
	for i := range items {
		if P(&items[i]).Published() {
			published = append(published, items[i])
		}
	}
	return published, nil
}

// Get returns the record with the external id, or nil when none exists.
func (r *ContentRepo[T, P]) Get(ctx context.Context, id string) (*T, error) {
	if r.snapshot != nil {
		item, err := r.snapshot.Get(ctx, id)
		if err == nil {
			return item, nil
		}
		r.logger.Warn().Err(err).Str("id", id).Msg("snapshot read failed, falling back to store")
	}
	return r.store.Get(ctx, id)
}

// Create validates item, assigns a fresh external id and timestamps and inserts it.
func (r *ContentRepo[T, P]) Create(ctx context.Context, item P) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}

	id, err := newExternalID()
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to generate id", err)
	}

	now := r.timestamp()
	base := item.Base()
	base.StoreID = uuid.Nil
	base.ID = id
	base.CreatedAt = now
	base.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return "", errs.NewDatabaseError("create", r.kind, err)
	}

	r.logger.Info().Str("id", id).Msg("created")
	r.changed(ctx)
	return id, nil
}

// Update applies the supplied JSON fields to the stored record. The external id, the store id and
// createdAt are kept; updatedAt always moves forward. It returns the number of matched records.
func (r *ContentRepo[T, P]) Update(ctx context.Context, id string, patch map[string]any) (int64, error) {
	existing, err := r.store.getPrimary(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing == nil {
		return 0, errs.NewNotFound(r.kind)
	}

	merged := *existing
	raw, err := json.Marshal(patch)
	if err != nil {
		return 0, errs.NewMalformedPayloadError(r.kind, err)
	}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return 0, errs.NewMalformedPayloadError(r.kind, err)
	}

	item := P(&merged)
	if err := item.CheckEnums(); err != nil {
		return 0, err
	}

	prev := P(existing).Base()
	base := item.Base()
	base.StoreID = prev.StoreID
	base.ID = prev.ID
	base.CreatedAt = prev.CreatedAt
	base.UpdatedAt = r.timestamp()
	if !base.UpdatedAt.After(prev.UpdatedAt) {
		base.UpdatedAt = prev.UpdatedAt.Add(time.Microsecond)
	}

	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ?", id).
		Select("*").
		Omit("store_id", "id", "created_at").
		Updates(item)
	if result.Error != nil {
		return 0, errs.NewDatabaseError("update", r.kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewNotFound(r.kind)
	}

	r.changed(ctx)
	return result.RowsAffected, nil
}

// Delete hard-removes the record and returns the number of matched records.
func (r *ContentRepo[T, P]) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(P(new(T)))
	if result.Error != nil {
		return 0, errs.NewDatabaseError("delete", r.kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewNotFound(r.kind)
	}

	r.logger.Info().Str("id", id).Msg("deleted")
	r.changed(ctx)
	return result.RowsAffected, nil
}

// Count returns the number of records in the store.
func (r *ContentRepo[T, P]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(P(new(T))).Count(&count).Error; err != nil {
		return 0, errs.NewDatabaseError("count", r.kind, err)
	}
	return count, nil
}

// timestamp drops precision below what the store keeps.
func (r *ContentRepo[T, P]) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *ContentRepo[T, P]) changed(ctx context.Context) {
	if r.invalidator != nil {
		r.invalidator.Invalidate(ctx, r.collection)
	}
}

// sortByOrder sorts ascending by order, keeping creation order between equal ranks.
func sortByOrder[T any, P Entity[T]](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := P(&items[i]).Base(), P(&items[j]).Base()
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// newExternalID returns a time-ordered UUID (v7), so ids sort by creation like the
// timestamp ids of older snapshot files while staying collision free.
func newExternalID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type repoSettings struct {
	invalidator Invalidator
	now         func() time.Time
}

type RepoOption func(*repoSettings)

// WithInvalidator registers a listener for writes.
func WithInvalidator(invalidator Invalidator) RepoOption {
	return func(s *repoSettings) {
		s.invalidator = invalidator
	}
}

func WithClock(now func() time.Time) RepoOption {
	return func(s *repoSettings) {
		s.now = now
	}
}
