// Package domain defines the scanner's types and ports. The scanner owns the
// per-channel watermark map and passes it by reference into each polling
// cycle; the classification core never sees it
package domain

import "context"

// ChannelID identifies a chat channel
type ChannelID string

// MessageID identifies a message. Chat platforms hand these out as numeric
// strings (snowflakes) that sort by creation time
type MessageID string

// After reports whether m was created after other. Empty sorts first.
// Snowflakes compare numerically: longer string wins, then lexicographic
func (m MessageID) After(other MessageID) bool {
	if len(m) != len(other) {
		return len(m) > len(other)
	}
	return m > other
}

// Message is one raw chat message as delivered by the adapter
type Message struct {
	ID          MessageID
	ChannelID   ChannelID
	AuthorID    string
	AuthorName  string
	AuthorIsBot bool
	Content     string
}

// Watermarks maps each channel to the last processed message id
type Watermarks map[ChannelID]MessageID

// Advance moves the channel's watermark forward, never backward
func (w Watermarks) Advance(ch ChannelID, id MessageID) {
	if cur, ok := w[ch]; !ok || id.After(cur) {
		w[ch] = id
	}
}

// ChatPort is the chat-platform surface the scanner needs: identity, history
// after a watermark, and posting. Everything else about the platform stays
// behind the adapter
type ChatPort interface {
	// Self returns the bot's own user id, for self-message suppression
	Self(ctx context.Context) (string, error)
	// MessagesAfter lists up to limit messages in ch newer than after,
	// oldest first. An empty after means "from the beginning of the poll"
	MessagesAfter(ctx context.Context, ch ChannelID, after MessageID, limit int) ([]Message, error)
	// Send posts content to ch
	Send(ctx context.Context, ch ChannelID, content string) error
}

// StatePort persists per-channel cursors and the enabled flag across restarts
type StatePort interface {
	// Load returns the saved cursors and the set of disabled channels
	Load(ctx context.Context) (Watermarks, map[ChannelID]bool, error)
	// SaveCursor upserts the cursor for ch
	SaveCursor(ctx context.Context, ch ChannelID, id MessageID) error
	// SetEnabled flips detection for ch
	SetEnabled(ctx context.Context, ch ChannelID, enabled bool) error
}

// RunnerPort is the external surface of the scanner service
type RunnerPort interface {
	// Run polls until ctx is cancelled
	Run(ctx context.Context) error
	// RunOnce performs a single polling cycle over the given state
	RunOnce(ctx context.Context, wm Watermarks, disabled map[ChannelID]bool) error
}
