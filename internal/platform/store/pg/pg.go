// Package pg provides a Postgres client using pgxpool
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"codefence/internal/platform/logger"
)

// Config configures pgxpool for pg
type Config struct {
	URL      string
	MaxConns int32
	PingTO   time.Duration
}

// PG is a postgres client with a pool
type PG struct {
	Pool *pgxpool.Pool
}

var newPool = pgxpool.NewWithConfig // seam for tests

// Open creates a new PG client with the given config and verifies
// connectivity with a bounded ping
func Open(ctx context.Context, cfg Config) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	to := cfg.PingTO
	if to <= 0 {
		to = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, to)
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Named("pg").Debug().Int32("max_conns", pcfg.MaxConns).Msg("pool open")
	return &PG{Pool: pool}, nil
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
