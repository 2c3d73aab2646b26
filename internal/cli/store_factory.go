package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/tracentm/internal/config"
	"github.com/aretw0/tracentm/pkg/adapters/file"
	"github.com/aretw0/tracentm/pkg/adapters/memory"
	"github.com/aretw0/tracentm/pkg/adapters/redis"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
)

// OpenStore builds the report store selected by cfg. The returned close func is never nil.
// A nil store means reports are not kept.
func OpenStore(cfg config.StoreConfig) (ports.ReportStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StoreNone, "":
		return nil, noop, nil
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.NewStore(cfg.Path), noop, nil
	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithTTL(cfg.Redis.TTL))
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func saveReport(ctx context.Context, path string, rep *domain.Report) error {
	if err := file.NewStore(path).Save(ctx, rep); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
