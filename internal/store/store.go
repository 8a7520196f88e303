// Package store persists posted charts so their buttons keep working across
// restarts and the scheduler can refresh them.
package store

import (
	"errors"
	"time"

	"IVSentinel/internal/model"
)

// ErrNotFound is returned when no chart exists for a message ID.
var ErrNotFound = errors.New("chart not found")

// ChartRecord is one posted chart, keyed by its Discord message.
type ChartRecord struct {
	MessageID  string
	ChannelID  string
	UserID     string
	Symbol     string
	Expiration model.TradingDate
	OptionType model.OptionType
	Days       int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store persists chart records.
type Store interface {
	Save(rec *ChartRecord) error
	Get(messageID string) (*ChartRecord, error)
	Update(rec *ChartRecord) error
	Delete(messageID string) error
	List() ([]*ChartRecord, error)
	Close() error
}
