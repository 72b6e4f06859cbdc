package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mytheresa/balanco-mensal/app/ledger"
	"github.com/mytheresa/balanco-mensal/config"
	"github.com/mytheresa/balanco-mensal/internal/clock"
	"github.com/mytheresa/balanco-mensal/logging"
	"github.com/mytheresa/balanco-mensal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:           "balanco",
	Short:         "Monthly inventory (Balanço Mensal) ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before the environment (default .env)")
	rootCmd.AddCommand(serveCmd, exportCmd, listCmd, archiveCmd)
}

// runtime is everything a command needs once configuration is loaded.
type runtime struct {
	cfg        *config.Config
	controller *ledger.Controller
	clock      clock.Clock
	close      func()
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	log, err := logging.Setup(cfg.LogMode, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	time.Local = cfg.Location()

	catalog, err := models.NewCatalog(cfg.Sectors...)
	if err != nil {
		return nil, fmt.Errorf("BALANCO_SECTORS: %w", err)
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	controller, err := ledger.NewController(ctx, repo, catalog)
	if err != nil {
		closeRepo()
		return nil, err
	}
	zap.L().Info("ledger loaded",
		zap.String("storage", cfg.StorageDriver),
		zap.Int("records", controller.Snapshot().Len()))

	return &runtime{
		cfg:        cfg,
		controller: controller,
		clock:      clock.NewRealClock(),
		close: func() {
			closeRepo()
			_ = log.Sync()
		},
	}, nil
}

func openRepository(ctx context.Context, cfg *config.Config) (ledger.Repository, func(), error) {
	if cfg.StorageDriver == config.StorageBolt {
		repo, err := models.OpenBoltLedgerRepository(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	}

	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.PostgresDriver == "pq" {
			dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.PostgresDSN})
		} else {
			dialector = postgres.Open(cfg.PostgresDSN)
		}
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", cfg.StorageDriver, err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	repo := models.NewGormLedgerRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate ledger tables: %w", err)
	}
	return repo, closeDB, nil
}
