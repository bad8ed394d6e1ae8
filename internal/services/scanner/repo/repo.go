// Package repo persists per-channel scanner state in Postgres
package repo

import (
	"context"

	perr "codefence/internal/platform/errors"
	"codefence/internal/platform/store/pg"
	"codefence/internal/services/scanner/domain"
)

// Repo implements domain.StatePort over pgx
type Repo struct {
	db *pg.PG
}

// New creates the repo
func New(db *pg.PG) *Repo { return &Repo{db: db} }

// EnsureSchema creates the channel-state table when missing
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS bot_channels (
			channel_id      text PRIMARY KEY,
			enabled         boolean     NOT NULL DEFAULT true,
			last_message_id text        NOT NULL DEFAULT '',
			updated_at      timestamptz NOT NULL DEFAULT now()
		);`
	if _, err := r.db.Pool.Exec(ctx, ddl); err != nil {
		return perr.FromPG(err, "ensure channel schema")
	}
	return nil
}

// Load returns saved cursors plus the set of disabled channels
func (r *Repo) Load(ctx context.Context) (domain.Watermarks, map[domain.ChannelID]bool, error) {
	const q = `SELECT channel_id, enabled, last_message_id FROM bot_channels`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, nil, perr.FromPG(err, "load channel state")
	}
	defer rows.Close()

	wm := domain.Watermarks{}
	disabled := map[domain.ChannelID]bool{}
	for rows.Next() {
		var (
			ch      string
			enabled bool
			last    string
		)
		if err := rows.Scan(&ch, &enabled, &last); err != nil {
			return nil, nil, perr.FromPG(err, "scan channel state")
		}
		if last != "" {
			wm[domain.ChannelID(ch)] = domain.MessageID(last)
		}
		if !enabled {
			disabled[domain.ChannelID(ch)] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, perr.FromPG(err, "iterate channel state")
	}
	return wm, disabled, nil
}

// SaveCursor upserts the cursor for ch
func (r *Repo) SaveCursor(ctx context.Context, ch domain.ChannelID, id domain.MessageID) error {
	const q = `
		INSERT INTO bot_channels (channel_id, last_message_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (channel_id) DO UPDATE
		SET last_message_id = EXCLUDED.last_message_id, updated_at = now()`
	if _, err := r.db.Pool.Exec(ctx, q, string(ch), string(id)); err != nil {
		return perr.FromPG(err, "save cursor")
	}
	return nil
}

// SetEnabled flips detection for ch
func (r *Repo) SetEnabled(ctx context.Context, ch domain.ChannelID, enabled bool) error {
	const q = `
		INSERT INTO bot_channels (channel_id, enabled, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (channel_id) DO UPDATE
		SET enabled = EXCLUDED.enabled, updated_at = now()`
	if _, err := r.db.Pool.Exec(ctx, q, string(ch), enabled); err != nil {
		return perr.FromPG(err, "set enabled")
	}
	return nil
}
