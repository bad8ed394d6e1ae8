// Package service implements the scanner: the polling host around the
// classification core. It owns nothing the core needs; watermarks and
// channel state are loaded here and passed into each cycle
package service

import (
	"context"
	"time"

	"codefence/internal/core/codedetect"
	"codefence/internal/core/langclass"
	"codefence/internal/core/rulepack"
	"codefence/internal/core/sanitize"
	"codefence/internal/core/version"
	perr "codefence/internal/platform/errors"
	"codefence/internal/platform/logger"
	evdom "codefence/internal/services/events/domain"
	"codefence/internal/services/scanner/domain"
)

// Config for the scanner service
type Config struct {
	// Channels the bot watches
	Channels []domain.ChannelID
	// Interval between polling cycles
	Interval time.Duration
	// Backoff after a failed cycle
	Backoff time.Duration
	// PageLimit caps messages fetched per channel per cycle
	PageLimit int
	// CommandPrefix introduces bot commands, e.g. "!"
	CommandPrefix string
	// AdminUsers may toggle detection per channel
	AdminUsers []string
}

// Service implements domain.RunnerPort
type Service struct {
	chat   domain.ChatPort
	state  domain.StatePort
	events evdom.WriterPort
	det    *codedetect.Detector
	cls    *langclass.Classifier
	cfg    Config
	admins map[string]struct{}
	selfID string
	log    *logger.Logger
}

// New constructs the scanner over a compiled rule pack and its ports
func New(chat domain.ChatPort, state domain.StatePort, events evdom.WriterPort, p *rulepack.Pack, cfg Config) *Service {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 5 * time.Second
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 10
	}
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	admins := make(map[string]struct{}, len(cfg.AdminUsers))
	for _, a := range cfg.AdminUsers {
		admins[a] = struct{}{}
	}
	return &Service{
		chat:   chat,
		state:  state,
		events: events,
		det:    codedetect.New(p),
		cls:    langclass.New(p),
		cfg:    cfg,
		admins: admins,
		log:    logger.Named("scanner"),
	}
}

// Run polls until ctx is cancelled. Transient cycle errors are logged and
// retried after the backoff delay; the loop itself never gives up
func (s *Service) Run(ctx context.Context) error {
	self, err := s.chat.Self(ctx)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "resolve bot identity")
	}
	s.selfID = self

	wm, disabled, err := s.state.Load(ctx)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "load channel state")
	}
	if wm == nil {
		wm = domain.Watermarks{}
	}
	if disabled == nil {
		disabled = map[domain.ChannelID]bool{}
	}

	s.log.Info().Int("channels", len(s.cfg.Channels)).Dur("interval", s.cfg.Interval).Msg("scanner running")

	for {
		if err := s.RunOnce(ctx, wm, disabled); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error().Err(err).Dur("backoff", s.cfg.Backoff).Msg("cycle failed; backing off")
			if !sleep(ctx, s.cfg.Backoff) {
				return ctx.Err()
			}
			continue
		}
		if !sleep(ctx, s.cfg.Interval) {
			return ctx.Err()
		}
	}
}

// RunOnce performs a single polling cycle. The watermark map and disabled
// set are the caller's; they are mutated in place and survive across cycles
func (s *Service) RunOnce(ctx context.Context, wm domain.Watermarks, disabled map[domain.ChannelID]bool) error {
	for _, ch := range s.cfg.Channels {
		msgs, err := s.chat.MessagesAfter(ctx, ch, wm[ch], s.cfg.PageLimit)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUpstream, "poll channel %s", ch)
		}
		advanced := false
		for _, m := range msgs {
			s.handle(ctx, m, wm, disabled)
			wm.Advance(ch, m.ID)
			advanced = true
		}
		if advanced {
			if err := s.state.SaveCursor(ctx, ch, wm[ch]); err != nil {
				// a stale cursor means reprocessing after restart, not data loss
				s.log.Warn().Err(err).Str("channel", string(ch)).Msg("cursor save failed")
			}
		}
	}
	return nil
}

// handle runs one message through commands and the detection pipeline.
// Failures are logged, never escalated: a bad message must not stall the
// channel cursor
func (s *Service) handle(ctx context.Context, m domain.Message, wm domain.Watermarks, disabled map[domain.ChannelID]bool) {
	if m.AuthorID == s.selfID || m.AuthorIsBot {
		return
	}
	if s.handleCommand(ctx, m, disabled) {
		return
	}
	if disabled[m.ChannelID] {
		return
	}

	text := sanitize.Clean(m.Content)
	verdict := s.det.Explain(text)
	if !verdict.Likely {
		return
	}
	label := s.cls.Classify(text)

	// repost the verbatim content, not the sanitized form
	if err := s.chat.Send(ctx, m.ChannelID, Format(m.AuthorName, m.Content, label)); err != nil {
		s.log.Error().Err(err).Str("channel", string(m.ChannelID)).Msg("repost failed")
		return
	}

	ev := evdom.Event{
		ChannelID:    string(m.ChannelID),
		AuthorID:     m.AuthorID,
		Language:     string(label),
		Reason:       string(verdict.Reason),
		RulesVersion: version.RulesVersion,
	}
	if err := s.events.Record(ctx, ev); err != nil {
		s.log.Warn().Err(err).Msg("event record failed")
	}

	s.log.Debug().
		Str("channel", string(m.ChannelID)).
		Str("language", string(label)).
		Str("reason", string(verdict.Reason)).
		Msg("reposted")
}

// sleep waits d or until ctx is done; returns false when cancelled
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
