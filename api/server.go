package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, opts ...Option) (Server, error) {
	var settings router
	for _, opt := range opts {
		opt(&settings)
	}
	c := settings.config
	if c == nil {
		c = config.New()
		opts = append(opts, WithConfig(c))
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()
	opts = append(opts, withStartupTime(startupTime))

	chiRouter, err := newRouter(database, opts...)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      chiRouter,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 30),  // Timeout for reading the entire request
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 60), // Timeout for writing the response
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 120), // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	cache       *cache.Cache
	notifier    ContactNotifier
	uploader    ObjectUploader
	snapshots   map[string]bool
	logger      *zerolog.Logger

	// derived from config in newRouter
	adminPassword string
	sessions      sessionIssuer
}

type Option func(*router)

func WithConfig(c map[string]string) Option {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) Option {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithCache puts a Redis cache in front of the public lists.
func WithCache(c *cache.Cache) Option {
	return func(r *router) {
		r.cache = c
	}
}

func WithNotifier(n ContactNotifier) Option {
	return func(r *router) {
		r.notifier = n
	}
}

func WithUploader(u ObjectUploader) Option {
	return func(r *router) {
		r.uploader = u
	}
}

// WithSnapshotStatus reports, per collection, whether reads are served from a snapshot file.
func WithSnapshotStatus(available map[string]bool) Option {
	return func(r *router) {
		r.snapshots = available
	}
}

// WithRequestLogger overrides the logger used for per-request lines.
func WithRequestLogger(logger zerolog.Logger) Option {
	return func(r *router) {
		r.logger = &logger
	}
}

func newRouter(database database.Database, opts ...Option) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.config == nil {
		router.config = config.New()
	}
	if router.startupTime.IsZero() {
		router.startupTime = time.Now()
	}

	router.adminPassword = config.GetString(router.config, "ADMIN_PASSWORD", "")
	router.sessions = sessionIssuer{
		secret:       []byte(config.GetString(router.config, "SESSION_SECRET", "")),
		ttl:          time.Duration(config.GetInt(router.config, "SESSION_TTL_HOURS", 12)) * time.Hour,
		secureCookie: config.GetBool(router.config, "COOKIE_SECURE", true),
	}
	if router.adminPassword != "" && len(router.sessions.secret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 bytes when ADMIN_PASSWORD is set")
	}
	if router.adminPassword == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, admin login disabled")
	}

	requestLogger := log.Logger
	if router.logger != nil {
		requestLogger = *router.logger
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(metricsMiddleware)
	chiRouter.Use(ColoredHTTPLoggingMiddleware(requestLogger))

	acceptedOrigins := config.GetStringSlice(router.config, "ACCEPTED_ORIGINS", nil)
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(database, router)
	authMiddleware := newAuthMiddleware(router.sessions)
	limits := rateLimits{
		login:   NewRateLimiter(5, time.Minute).WithCounter(router.cache, "login"),
		contact: NewRateLimiter(config.GetInt(router.config, "CONTACT_RATE_LIMIT", 5), time.Hour).WithCounter(router.cache, "contact"),
	}

	setupRoutes(chiRouter, handlers, authMiddleware, limits)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
