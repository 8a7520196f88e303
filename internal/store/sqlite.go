package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"IVSentinel/internal/model"
)

// SQLiteStore persists chart records to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite chart store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS charts (
			message_id  TEXT PRIMARY KEY,
			channel_id  TEXT NOT NULL,
			user_id     TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			expiration  TEXT NOT NULL,
			option_type TEXT NOT NULL,
			days        INTEGER NOT NULL,
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_charts_channel ON charts(channel_id)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Save(rec *ChartRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	_, err := s.db.Exec(`INSERT OR REPLACE INTO charts
		(message_id, channel_id, user_id, symbol, expiration, option_type, days, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.MessageID, rec.ChannelID, rec.UserID,
		rec.Symbol, rec.Expiration.String(), string(rec.OptionType), rec.Days,
		rec.CreatedAt.Unix(), rec.UpdatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) Get(messageID string) (*ChartRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT message_id, channel_id, user_id, symbol, expiration, option_type, days, created_at, updated_at
		FROM charts WHERE message_id = ?`, messageID)
	rec, err := scanChart(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *SQLiteStore) Update(rec *ChartRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.UpdatedAt = time.Now()
	res, err := s.db.Exec(`UPDATE charts
		SET symbol = ?, expiration = ?, option_type = ?, days = ?, updated_at = ?
		WHERE message_id = ?`,
		rec.Symbol, rec.Expiration.String(), string(rec.OptionType), rec.Days,
		rec.UpdatedAt.Unix(), rec.MessageID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Delete(messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM charts WHERE message_id = ?`, messageID)
	return err
}

func (s *SQLiteStore) List() ([]*ChartRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT message_id, channel_id, user_id, symbol, expiration, option_type, days, created_at, updated_at
		FROM charts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*ChartRecord
	for rows.Next() {
		rec, err := scanChart(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite chart store")
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChart(row rowScanner) (*ChartRecord, error) {
	var rec ChartRecord
	var expiration, optionType string
	var created, updated int64
	err := row.Scan(&rec.MessageID, &rec.ChannelID, &rec.UserID,
		&rec.Symbol, &expiration, &optionType, &rec.Days, &created, &updated)
	if err != nil {
		return nil, err
	}
	rec.Expiration, err = model.ParseTradingDate(expiration)
	if err != nil {
		return nil, fmt.Errorf("stored expiration: %w", err)
	}
	rec.OptionType = model.OptionType(optionType)
	rec.CreatedAt = time.Unix(created, 0)
	rec.UpdatedAt = time.Unix(updated, 0)
	return &rec, nil
}
