package service

import (
	"context"
	"strings"

	"codefence/internal/services/scanner/domain"
)

const helpText = "**Code Detection Bot**\n" +
	"Posts that look like unformatted code get reposted in a fenced block " +
	"with a best-guess language tag.\n\n" +
	"Commands:\n" +
	"`!togglecode` - enable/disable detection in this channel (admins)\n" +
	"`!codehelp` - this message\n\n" +
	"To skip detection, format your code yourself with triple backticks."

// handleCommand dispatches prefix commands; returns true when the message
// was a command (recognized or not) so it skips the detection pipeline
func (s *Service) handleCommand(ctx context.Context, m domain.Message, disabled map[domain.ChannelID]bool) bool {
	if !strings.HasPrefix(m.Content, s.cfg.CommandPrefix) {
		return false
	}
	cmd := strings.TrimPrefix(strings.Fields(m.Content)[0], s.cfg.CommandPrefix)

	switch cmd {
	case "codehelp":
		s.reply(ctx, m.ChannelID, helpText)
		return true

	case "togglecode":
		if _, ok := s.admins[m.AuthorID]; !ok {
			s.reply(ctx, m.ChannelID, "You are not allowed to toggle code detection here.")
			return true
		}
		now := !disabled[m.ChannelID]
		disabled[m.ChannelID] = now
		if err := s.state.SetEnabled(ctx, m.ChannelID, !now); err != nil {
			s.log.Warn().Err(err).Str("channel", string(m.ChannelID)).Msg("toggle persist failed")
		}
		if now {
			s.reply(ctx, m.ChannelID, "Code detection disabled for this channel.")
		} else {
			s.reply(ctx, m.ChannelID, "Code detection enabled for this channel.")
		}
		return true
	}

	// unknown prefix commands are left for other bots
	return false
}

func (s *Service) reply(ctx context.Context, ch domain.ChannelID, text string) {
	if err := s.chat.Send(ctx, ch, text); err != nil {
		s.log.Error().Err(err).Str("channel", string(ch)).Msg("reply failed")
	}
}
