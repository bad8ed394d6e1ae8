package main

import (
	"context"
	"os/signal"
	"syscall"

	"codefence/internal/core/rulepack"
	"codefence/internal/platform/config"
	"codefence/internal/platform/logger"
	phttp "codefence/internal/platform/net/http"
	"codefence/internal/platform/store"

	"codefence/internal/services/api"
	eventsrepo "codefence/internal/services/events/repo"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("API_")
	pgCfg := root.Prefix("PG_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pack, err := rulepack.Load()
	if err != nil {
		l.Panic().Err(err).Msg("rulepack load failed")
	}

	st, err := store.Open(ctx, store.FromConf(pgCfg))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer st.Close()

	events := eventsrepo.New(st.PG)
	if err := events.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("events schema failed")
	}

	// http server (reads API_ADDR / API_CORS_ORIGINS)
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Pack:   pack,
		Events: events,
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
