package store

import (
	"context"
	"fmt"

	"github.com/Domenick1991/servicehub/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open connects the backend named by cfg.Storage.Driver. The returned close
// func releases its connections.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryStore(), func() {}, nil
	case "redis":
		s := NewRedisStore(cfg.Redis)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Storage.Postgres.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		s := NewPGStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
