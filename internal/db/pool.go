package db

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewDBPoolParams struct {
	ConnString      string
	MaxConns        int32
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// NewDBPool creates a pool without waiting for the first connection.
func NewDBPool(ctx context.Context, params NewDBPoolParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(params.ConnString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.MaxConns > 0 {
		poolConfig.MaxConns = params.MaxConns
	}
	if params.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = params.MaxConnIdleTime
	}
	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return db, nil
}

// PoolDialer returns a DialFunc creating a fresh pool with the given params on every call.
func PoolDialer(params NewDBPoolParams) DialFunc {
	return func(ctx context.Context) (*pgxpool.Pool, error) {
		return NewDBPool(ctx, params)
	}
}

// PoolSource hands out the current pool. Repos resolve it on every call since
// a reload replaces the pool.
type PoolSource interface {
	Pool() (*pgxpool.Pool, error)
}
