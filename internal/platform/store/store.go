// Package store opens the platform storage backends from config.
// Today that is Postgres only; the API keeps room for more
package store

import (
	"context"

	"codefence/internal/platform/config"
	"codefence/internal/platform/store/pg"
)

// Config selects and configures backends
type Config struct {
	PG pg.Config
}

// FromConf builds a Config from a PG_-scoped config view
func FromConf(cfg config.Conf) Config {
	return Config{
		PG: pg.Config{
			URL:      cfg.MustString("DBURL"),
			MaxConns: int32(cfg.MayInt("MAX_CONNS", 4)),
		},
	}
}

// Store bundles the open backends
type Store struct {
	PG *pg.PG
}

// Open connects all configured backends
func Open(ctx context.Context, cfg Config) (*Store, error) {
	p, err := pg.Open(ctx, cfg.PG)
	if err != nil {
		return nil, err
	}
	return &Store{PG: p}, nil
}

// Close releases all backends
func (s *Store) Close() {
	if s == nil {
		return
	}
	s.PG.Close()
}
