package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kedaikopi/backoffice"
	"github.com/kedaikopi/backoffice/internal/catalog"
	"github.com/kedaikopi/backoffice/internal/config"
	"github.com/kedaikopi/backoffice/internal/logging"
	_ "github.com/kedaikopi/backoffice/internal/migrations"
	"github.com/kedaikopi/backoffice/internal/pricing"
	"github.com/kedaikopi/backoffice/internal/runner"
	"github.com/kedaikopi/backoffice/internal/users"
	"github.com/kedaikopi/backoffice/internal/utils"
	"github.com/kedaikopi/backoffice/internal/versioner"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// connectDB connects to the database based on the URL
func connectDB(databaseURL string, debug bool) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logging.GORM(debug), TranslateError: true}
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return gorm.Open(postgres.Open(databaseURL), gcfg)
	case strings.HasPrefix(databaseURL, "sqlite://"):
		db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://")), gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; nested transactions need the same conn.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	return nil, fmt.Errorf("unsupported database URL: %s", databaseURL)
}

// app is what a command needs once the config is loaded.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *gorm.DB
	catalog *catalog.Service
	users   *users.Store
	pricing *pricing.Service
}

func loadConfig() (*config.Config, error) {
	if !utils.FileExists(configPath) {
		return nil, fmt.Errorf("%s not found. Run 'backoffice init' first", configPath)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	db, err := connectDB(cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	cat := catalog.New(db, log, cfg.PageSize)
	return &app{
		cfg:     cfg,
		log:     log,
		db:      db,
		catalog: cat,
		users:   users.NewStore(db, log, users.DefaultCost),
		pricing: pricing.NewService(cat, pricing.NewEngine(cfg.Policy()), log),
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// runner builds a migration runner over the built-in migrations.
func (a *app) runner() (*runner.Runner, *versioner.Versioner, error) {
	ver := versioner.NewVersioner(a.db, a.cfg.MigrationTable)
	if err := ver.Initialize(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize version table: %w", err)
	}
	return runner.NewRunner(a.db, backoffice.GetGlobalRegistry(), ver), ver, nil
}

// withApp adapts a command body that needs an open app.
func withApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, a, args)
	}
}
