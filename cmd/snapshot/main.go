// Command snapshot exports the store's projects, experiences and educations into the JSON
// snapshot files the server reads, and optionally uploads them to S3.
package main

import (
	"context"
	"flag"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/snapshot"
)

func main() {
	_ = godotenv.Load()
	cfg := config.New()

	dir := flag.String("dir", config.GetString(cfg, "SNAPSHOT_DIR", "./snapshots"), "Directory to write snapshot files into")
	upload := flag.Bool("upload", false, "Also upload the files to S3_BUCKET under snapshots/")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall export timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := config.LoadSSM(ctx, cfg, config.GetString(cfg, "SSM_PARAMETER_PREFIX", "")); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	db, err := database.Connect(database.ConnectOptionsFromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	store := database.New(db, database.Snapshots{})

	var uploader *services.Uploader
	if *upload {
		uploader, err = services.NewUploaderFromConfig(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing S3")
		}
		if uploader == nil {
			log.Fatal().Msg("-upload needs S3_BUCKET")
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return export(ctx, *dir, database.CollectionProjects, store.ProjectRepo().ListFromStore, uploader)
	})
	g.Go(func() error {
		return export(ctx, *dir, database.CollectionExperiences, store.ExperienceRepo().ListFromStore, uploader)
	})
	g.Go(func() error {
		return export(ctx, *dir, database.CollectionEducations, store.EducationRepo().ListFromStore, uploader)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Snapshot export failed")
	}

	log.Info().Str("dir", *dir).Msg("Snapshots exported")
}

func export[T models.Project | models.Experience | models.Education](ctx context.Context, dir, collection string, source func(context.Context) ([]T, error), uploader *services.Uploader) error {
	file, count, err := snapshot.Export(ctx, dir, collection, source)
	if err != nil {
		return err
	}
	log.Info().Str("collection", collection).Int("records", count).Str("path", file).Msg("Snapshot written")

	if uploader == nil {
		return nil
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := uploader.Put(ctx, path.Join("snapshots", collection+".json"), "application/json", f)
	if err != nil {
		return err
	}
	log.Info().Str("collection", collection).Str("url", url).Msg("Snapshot uploaded")
	return nil
}
