// Package daemon opens the database, builds the handler environment and runs the web service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	limitermysql "github.com/gofiber/storage/mysql/v2"
	limiterpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/config"
	"github.com/ajadmin/ajadmin/internal/db/dsn"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/logger/adapter/stdlogger"
	"github.com/ajadmin/ajadmin/internal/mail"
	"github.com/ajadmin/ajadmin/internal/payment"
	"github.com/ajadmin/ajadmin/internal/storage"
	"github.com/ajadmin/ajadmin/internal/web"
	"github.com/ajadmin/ajadmin/internal/web/handler"
)

const (
	limiterTable        = "fiber_limiter"
	limiterStorageDB    = "db"
	slowQueryThreshold  = time.Second
	engineMySQL         = "mysql"
	enginePostgres      = "postgres"
	engineSQLite        = "sqlite"
	defaultSQLiteDBFile = "ajadmin.db"
)

var errNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	env, err := NewEnv(ctx, cfg, db)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, env, LimiterStorage(cfg, db)),
	}, nil
}

// OpenDB connects to the configured engine and migrates the schema.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case engineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case enginePostgres:
		dialector = gormpostgres.Open(dsn.Postgres(cfg))
	case engineSQLite:
		path := cfg.DB.Path
		if path == "" {
			path = defaultSQLiteDBFile
		}

		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlogger.NewComponent("gorm", zerolog.WarnLevel), gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("Database ready")

	return db, nil
}

// NewEnv builds the collaborators shared by every handler.
func NewEnv(ctx context.Context, cfg *config.Config, db *gorm.DB) (*handler.Env, error) {
	tokens, err := auth.NewTokens(cfg.JWT)
	if err != nil {
		return nil, err
	}

	images, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	mailer, err := mail.NewSMTP(cfg.Mail, cfg.Title)
	if err != nil {
		return nil, err
	}

	return &handler.Env{
		Cfg:       cfg,
		DB:        db,
		Auth:      auth.NewService(db),
		Tokens:    tokens,
		Local:     auth.NewLocalProvider(db, tokens),
		Images:    images,
		Mailer:    mailer,
		Payments:  payment.NewStripe(cfg.Payment),
		Validator: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// LimiterStorage returns the store of the login rate limiter.
// Nil keeps the counters in memory.
func LimiterStorage(cfg *config.Config, db *gorm.DB) fiber.Storage {
	if cfg.Webserver.Limiter.Storage != limiterStorageDB {
		return nil
	}

	switch cfg.DB.GormEngine {
	case engineMySQL:
		sqlDB, err := db.DB()
		if err != nil {
			log.Error().Err(err).Msg("No sql handle for the limiter, counting in memory")

			return nil
		}

		return limitermysql.New(limitermysql.Config{Db: sqlDB, Table: limiterTable})
	case enginePostgres:
		return limiterpostgres.New(limiterpostgres.Config{ConnectionURI: dsn.Postgres(cfg), Table: limiterTable})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("Limiter storage not supported for engine, counting in memory")

		return nil
	}
}

// Bootstrap migrates the schema and creates the super admin when no staff user exists.
func Bootstrap(cfg *config.Config) (bool, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return false, err
	}

	b := cfg.Bootstrap

	created, err := auth.NewLocalProvider(db, nil).Bootstrap(b.Name, b.Email, b.Password)
	if err != nil {
		return false, err
	}

	log.Info().Bool("created", created).Str("email", b.Email).Msg("Bootstrap finished")

	return created, nil
}
