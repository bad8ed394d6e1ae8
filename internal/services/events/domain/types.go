// Package domain defines the detection-event log types and ports
package domain

import (
	"context"
	"time"
)

// Event is one reformatted message: who posted unfenced code where, and
// what language the classifier guessed
type Event struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel_id"`
	AuthorID     string    `json:"author_id"`
	Language     string    `json:"language"`
	Reason       string    `json:"reason"`
	RulesVersion int       `json:"rules_version"`
	CreatedAt    time.Time `json:"created_at"`
}

// LanguageCount is one row of the stats rollup
type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

// WriterPort records events
type WriterPort interface {
	Record(ctx context.Context, ev Event) error
}

// ReaderPort serves the read side
type ReaderPort interface {
	CountByLanguage(ctx context.Context, since time.Time) ([]LanguageCount, error)
}
