package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/portfolio-backend/config"
)

// ConnectOptions configures the store connection.
type ConnectOptions struct {
	DSN             string
	ReplicaDSN      string // optional read replica; reads route there, writes stay on the primary
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

// ConnectOptionsFromConfig reads DATABASE_URL, or builds a DSN from the DB_* keys when it is unset.
func ConnectOptionsFromConfig(cfg map[string]string) ConnectOptions {
	dsn := config.GetString(cfg, "DATABASE_URL", "")
	if dsn == "" && config.GetString(cfg, "DB_HOST", "") != "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(cfg, "DB_HOST", ""),
			config.GetString(cfg, "DB_USER", "postgres"),
			config.GetString(cfg, "DB_PASSWORD", ""),
			config.GetString(cfg, "DB_NAME", "portfolio"),
			config.GetString(cfg, "DB_PORT", "5432"),
			config.GetString(cfg, "DB_SSLMODE", "require"),
		)
	}

	return ConnectOptions{
		DSN:             dsn,
		ReplicaDSN:      config.GetString(cfg, "DB_REPLICA_URL", ""),
		MaxOpenConns:    config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    config.GetInt(cfg, "DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(config.GetInt(cfg, "DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		SlowThreshold:   time.Duration(config.GetInt(cfg, "DB_SLOW_QUERY_MS", 200)) * time.Millisecond,
	}
}

// Connect opens the Postgres store and tunes its pool.
func Connect(opts ConnectOptions) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, errors.New("database DSN is empty")
	}
	if opts.SlowThreshold == 0 {
		opts.SlowThreshold = 200 * time.Millisecond
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger: &gormLogger{
			logger:        log.With().Str("component", "gorm").Logger(),
			level:         logger.Warn,
			slowThreshold: opts.SlowThreshold,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if opts.ReplicaDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if opts.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("failed to register read replica: %w", err)
		}
		log.Info().Msg("Read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to test database connection: %w", err)
	}

	log.Info().Msg("Database connected successfully")
	return db, nil
}

// gormLogger routes gorm's query log into zerolog.
type gormLogger struct {
	logger        zerolog.Logger
	level         logger.LogLevel
	slowThreshold time.Duration
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.level = level
	return &newLogger
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		l.logger.Info().Msgf(msg, data...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		l.logger.Warn().Msgf(msg, data...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		l.logger.Error().Msgf(msg, data...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow query")
	case l.level >= logger.Info:
		sql, rows := fc()
		l.logger.Debug().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}
