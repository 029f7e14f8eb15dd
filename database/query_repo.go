package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type QueryRepo struct {
	db     *gorm.DB
	now    func() time.Time
	logger zerolog.Logger
}

func NewQueryRepo(db *gorm.DB, opts ...RepoOption) *QueryRepo {
	settings := repoSettings{now: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}
	return &QueryRepo{db: db, now: settings.now, logger: log.With().Str("repo", "queries").Logger()}
}

// FindAll returns all contact queries, newest first
func (r *QueryRepo) FindAll(ctx context.Context) ([]models.Query, error) {
	queries := make([]models.Query, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&queries).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "Query", err)
	}
	return queries, nil
}

// FindByID returns a query by its external id, or nil
func (r *QueryRepo) FindByID(ctx context.Context, id string) (*models.Query, error) {
	var queries []models.Query
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&queries).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "Query", err)
	}
	if len(queries) == 0 {
		return nil, nil
	}
	return &queries[0], nil
}

// Add validates and inserts a new query with status "new". It returns the external id.
func (r *QueryRepo) Add(ctx context.Context, query *models.Query) (string, error) {
	query.Status = models.QueryStatusNew
	if err := query.Validate(); err != nil {
		return "", err
	}

	id, err := newExternalID()
	if err != nil {
		return "", errs.NewInternalErrorWithCause("failed to generate id", err)
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	query.StoreID = uuid.Nil
	query.ID = id
	query.CreatedAt = now
	query.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(query).Error; err != nil {
		return "", errs.NewDatabaseError("create", "Query", err)
	}
	return id, nil
}

// UpdateStatus moves a query through new -> read -> replied (any order is allowed).
func (r *QueryRepo) UpdateStatus(ctx context.Context, id, status string) (int64, error) {
	if err := models.CheckQueryStatus(status); err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Model(&models.Query{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": r.now().UTC().Truncate(time.Microsecond)})
	if result.Error != nil {
		return 0, errs.NewDatabaseError("update", "Query", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewNotFound("Query")
	}
	return result.RowsAffected, nil
}

// Delete removes a query by external id
func (r *QueryRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Query{})
	if result.Error != nil {
		return 0, errs.NewDatabaseError("delete", "Query", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, errs.NewNotFound("Query")
	}
	return result.RowsAffected, nil
}

// CountByStatus counts queries in the given status.
func (r *QueryRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Query{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, errs.NewDatabaseError("count", "Query", err)
	}
	return count, nil
}
