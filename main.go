package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/snapshot"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()
	setupLogging(cfg)
	log.Info().Msg("Initializing app...")

	ctx := context.Background()
	if err := config.LoadSSM(ctx, cfg, config.GetString(cfg, "SSM_PARAMETER_PREFIX", "")); err != nil {
		log.Fatal().Err(err).Msg("Error loading SSM parameters")
	}

	db, err := database.Connect(database.ConnectOptionsFromConfig(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(cfg, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, print it and exit
	if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
		report, err := models.ColumnMismatchReport(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Error generating column report")
		}
		fmt.Println(report)
		return
	}

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating schema")
	}

	snapshots, available := loadSnapshots(ctx, config.GetString(cfg, "SNAPSHOT_DIR", ""))

	publicCache := cache.Connect(ctx, config.GetString(cfg, "REDIS_URL", ""), config.GetSeconds(cfg, "PUBLIC_CACHE_TTL_SECONDS", 60))
	defer publicCache.Close()

	currentDB := database.New(db, snapshots, database.WithInvalidator(publicCache))

	opts := []api.Option{
		api.WithConfig(cfg),
		api.WithCache(publicCache),
		api.WithSnapshotStatus(available),
		api.WithNotifier(services.NewContactNotifier(
			services.NewMailerFromConfig(cfg),
			services.NewSMSSenderFromConfig(cfg),
			config.GetStringSlice(cfg, "CONTACT_NOTIFY_EMAIL", nil),
		)),
	}
	uploader, err := services.NewUploaderFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing uploads")
	}
	if uploader != nil {
		opts = append(opts, api.WithUploader(uploader))
	}
	if strings.EqualFold(config.GetString(cfg, "LOG_FORMAT", ""), "console") {
		opts = append(opts, api.WithRequestLogger(api.NewConsoleLogger()))
	}

	errChannel := newErrChannel()

	server, err := api.NewServer(currentDB, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// loadSnapshots preloads the snapshot files under dir. Only readable ones become read sources.
func loadSnapshots(ctx context.Context, dir string) (database.Snapshots, map[string]bool) {
	var snapshots database.Snapshots
	if dir == "" {
		log.Info().Msg("SNAPSHOT_DIR not set, serving every collection from the store")
		return snapshots, map[string]bool{}
	}

	projects := snapshot.NewFile(snapshot.PathFor(dir, database.CollectionProjects),
		func(p *models.Project) string { return p.ID },
		snapshot.WithNormalizer(models.StoredDateNormalizer(database.CollectionProjects)))
	experiences := snapshot.NewFile(snapshot.PathFor(dir, database.CollectionExperiences),
		func(e *models.Experience) string { return e.ID },
		snapshot.WithNormalizer(models.StoredDateNormalizer(database.CollectionExperiences)))
	educations := snapshot.NewFile(snapshot.PathFor(dir, database.CollectionEducations),
		func(e *models.Education) string { return e.ID },
		snapshot.WithNormalizer(models.StoredDateNormalizer(database.CollectionEducations)))

	available := snapshot.Preload(ctx, map[string]snapshot.Loadable{
		database.CollectionProjects:    projects,
		database.CollectionExperiences: experiences,
		database.CollectionEducations:  educations,
	})
	if available[database.CollectionProjects] {
		snapshots.Projects = projects
	}
	if available[database.CollectionExperiences] {
		snapshots.Experiences = experiences
	}
	if available[database.CollectionEducations] {
		snapshots.Educations = educations
	}
	return snapshots, available
}

func setupLogging(cfg map[string]string) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(cfg, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(config.GetString(cfg, "LOG_FORMAT", ""), "console") {
		log.Logger = api.NewConsoleLogger()
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newErrChannel has room for the server and the interrupt listener to both send, so neither
// blocks once main has stopped reading. It is never closed.
func newErrChannel() chan error {
	return make(chan error, 2)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
