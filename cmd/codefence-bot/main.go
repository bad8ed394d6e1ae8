package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"codefence/internal/adapters/chat/discord"
	"codefence/internal/core/rulepack"
	"codefence/internal/platform/config"
	"codefence/internal/platform/logger"
	"codefence/internal/platform/store"

	eventsrepo "codefence/internal/services/events/repo"
	"codefence/internal/services/scanner/domain"
	scanrepo "codefence/internal/services/scanner/repo"
	"codefence/internal/services/scanner/service"
)

func main() {
	root := config.New()
	botCfg := root.Prefix("BOT_")
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
	state := scanrepo.New(st.PG)
	if err := state.EnsureSchema(ctx); err != nil {
		l.Panic().Err(err).Msg("channel schema failed")
	}

	chat := discord.New(botCfg.MustString("TOKEN"))

	var channels []domain.ChannelID
	for _, c := range botCfg.MayCSV("CHANNELS", nil) {
		channels = append(channels, domain.ChannelID(c))
	}
	if len(channels) == 0 {
		l.Panic().Msg("BOT_CHANNELS must name at least one channel")
	}

	svc := service.New(chat, state, events, pack, service.Config{
		Channels:      channels,
		Interval:      botCfg.MayDuration("POLL_INTERVAL", 2*time.Second),
		Backoff:       botCfg.MayDuration("ERROR_BACKOFF", 5*time.Second),
		PageLimit:     botCfg.MayInt("PAGE_LIMIT", 10),
		CommandPrefix: botCfg.MayString("COMMAND_PREFIX", "!"),
		AdminUsers:    botCfg.MayCSV("ADMIN_USERS", nil),
	})

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("scanner stopped")
	}
	l.Info().Msg("shutdown complete")
}
