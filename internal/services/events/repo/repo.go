// Package repo persists detection events in Postgres
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	perr "codefence/internal/platform/errors"
	"codefence/internal/platform/store/pg"
	"codefence/internal/services/events/domain"
)

// Repo implements domain.WriterPort and domain.ReaderPort over pgx
type Repo struct {
	db *pg.PG
}

// New creates the repo
func New(db *pg.PG) *Repo { return &Repo{db: db} }

// EnsureSchema creates the events table when missing. Called once at boot;
// a real migration tool would be overkill for two tables
func (r *Repo) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS detect_events (
			id            uuid PRIMARY KEY,
			channel_id    text        NOT NULL,
			author_id     text        NOT NULL,
			language      text        NOT NULL,
			reason        text        NOT NULL,
			rules_version int         NOT NULL,
			created_at    timestamptz NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS detect_events_created_idx
			ON detect_events (created_at);`
	if _, err := r.db.Pool.Exec(ctx, ddl); err != nil {
		return perr.FromPG(err, "ensure events schema")
	}
	return nil
}

// Record inserts one event; the id is generated here when absent
func (r *Repo) Record(ctx context.Context, ev domain.Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO detect_events (id, channel_id, author_id, language, reason, rules_version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q,
		ev.ID, ev.ChannelID, ev.AuthorID, ev.Language, ev.Reason, ev.RulesVersion, ev.CreatedAt)
	if err != nil {
		return perr.FromPG(err, "insert event")
	}
	return nil
}

// CountByLanguage returns per-language event counts since the given time
func (r *Repo) CountByLanguage(ctx context.Context, since time.Time) ([]domain.LanguageCount, error) {
	const q = `
		SELECT language, count(*)
		FROM detect_events
		WHERE created_at >= $1
		GROUP BY language
		ORDER BY count(*) DESC, language`
	rows, err := r.db.Pool.Query(ctx, q, since)
	if err != nil {
		return nil, perr.FromPG(err, "count events")
	}
	defer rows.Close()

	var out []domain.LanguageCount
	for rows.Next() {
		var lc domain.LanguageCount
		if err := rows.Scan(&lc.Language, &lc.Count); err != nil {
			return nil, perr.FromPG(err, "scan event count")
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPG(err, "iterate event counts")
	}
	return out, nil
}
