package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/hellomember/internal/config"
	"github.com/hitoshi/hellomember/internal/database"
	"github.com/hitoshi/hellomember/internal/handler"
	"github.com/hitoshi/hellomember/internal/repository"
)

// storePingTimeout は起動時のDB疎通確認のタイムアウト。
const storePingTimeout = 5 * time.Second

// memberStore はMEMBER_STOREで選択された会員ストア一式。
type memberStore struct {
	repo    repository.MemberRepository
	checker handler.HealthChecker
	close   func() error
}

// openMemberStore は設定に応じた会員リポジトリを生成する。
// DBバックエンドの場合は接続を開き、疎通を確認する。
func openMemberStore(ctx context.Context, cfg *config.Config) (*memberStore, error) {
	switch cfg.MemberStore {
	case config.StoreMemory:
		repo := repository.NewMemoryMemberRepo(repository.MemoryConfig{
			ResetSequenceOnClear: cfg.ResetSequenceOnClear,
		})
		return &memberStore{repo: repo, checker: repo, close: func() error { return nil }}, nil

	case config.StorePostgres:
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := pingStore(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		repo := repository.NewPostgresMemberRepo(db, cfg.ResetSequenceOnClear)
		return &memberStore{repo: repo, checker: db, close: db.Close}, nil

	case config.StoreSqlx:
		db, err := database.OpenSqlx(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := pingStore(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		repo := repository.NewSqlxMemberRepo(db, cfg.ResetSequenceOnClear)
		return &memberStore{repo: repo, checker: db, close: db.Close}, nil

	case config.StoreGorm:
		gdb, err := database.OpenGorm(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			database.CloseGorm(gdb)
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		if err := pingStore(ctx, sqlDB); err != nil {
			database.CloseGorm(gdb)
			return nil, err
		}
		repo := repository.NewGormMemberRepo(gdb, cfg.ResetSequenceOnClear)
		return &memberStore{repo: repo, checker: sqlDB, close: func() error { return database.CloseGorm(gdb) }}, nil

	default:
		return nil, fmt.Errorf("unsupported member store: %q", cfg.MemberStore)
	}
}

func pingStore(ctx context.Context, checker handler.HealthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if err := checker.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")
	return nil
}
