package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig carries the connection settings owned by the process entry point.
type PoolConfig struct {
	DatabaseURL string
	MaxConns    int32
	MinConns    int32
	Schema      string
}

// NewPool constructs the process-wide connection pool. The caller owns the
// returned pool and must Close it at shutdown.
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pc.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if pc.MaxConns > 0 {
		cfg.MaxConns = pc.MaxConns
	}
	if pc.MinConns > 0 {
		cfg.MinConns = pc.MinConns
	}
	if pc.Schema != "" {
		if !schemaPattern.MatchString(pc.Schema) {
			return nil, fmt.Errorf("invalid schema name %q", pc.Schema)
		}
		cfg.ConnConfig.RuntimeParams["search_path"] = pc.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
