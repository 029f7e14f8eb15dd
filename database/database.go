package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// Collection names, used for routes, snapshot files and cache keys.
const (
	CollectionProjects    = "projects"
	CollectionExperiences = "experiences"
	CollectionEducations  = "educations"
	CollectionTechStacks  = "techstacks"
)

// Snapshots holds the flat-file read sources. A nil field means that kind reads from the store only.
// Tech stacks are never served from a snapshot.
type Snapshots struct {
	Projects    Source[models.Project]
	Experiences Source[models.Experience]
	Educations  Source[models.Education]
}

type Database struct {
	db             *gorm.DB
	projectRepo    *ProjectRepo
	experienceRepo *ExperienceRepo
	educationRepo  *EducationRepo
	techStackRepo  *TechStackRepo
	queryRepo      *QueryRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB, snapshots Snapshots, opts ...RepoOption) Database {
	return Database{
		db:             db,
		projectRepo:    NewContentRepo[models.Project](db, CollectionProjects, snapshots.Projects, opts...),
		experienceRepo: NewContentRepo[models.Experience](db, CollectionExperiences, snapshots.Experiences, opts...),
		educationRepo:  NewContentRepo[models.Education](db, CollectionEducations, snapshots.Educations, opts...),
		techStackRepo:  NewContentRepo[models.TechStack](db, CollectionTechStacks, nil, opts...),
		queryRepo:      NewQueryRepo(db, opts...),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) EducationRepo() *EducationRepo {
	return d.educationRepo
}

func (d Database) TechStackRepo() *TechStackRepo {
	return d.techStackRepo
}

func (d Database) QueryRepo() *QueryRepo {
	return d.queryRepo
}

func (d Database) DB() *gorm.DB {
	return d.db
}

// Ping checks that the store answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errs.NewStoreUnavailableError("ping", "database", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewStoreUnavailableError("ping", "database", err)
	}
	return nil
}

// Summary is the admin dashboard count block.
type Summary struct {
	Projects    int64 `json:"projects"`
	Experiences int64 `json:"experiences"`
	Educations  int64 `json:"educations"`
	TechStacks  int64 `json:"techStacks"`
	NewQueries  int64 `json:"newQueries"`
}

func (d Database) Summary(ctx context.Context) (Summary, error) {
	var (
		s   Summary
		err error
	)
	if s.Projects, err = d.projectRepo.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Experiences, err = d.experienceRepo.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.Educations, err = d.educationRepo.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.TechStacks, err = d.techStackRepo.Count(ctx); err != nil {
		return Summary{}, err
	}
	if s.NewQueries, err = d.queryRepo.CountByStatus(ctx, models.QueryStatusNew); err != nil {
		return Summary{}, err
	}
	return s, nil
}
