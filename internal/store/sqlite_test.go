package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"IVSentinel/internal/model"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "charts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(messageID string) *ChartRecord {
	return &ChartRecord{
		MessageID:  messageID,
		ChannelID:  "chan-1",
		UserID:     "user-1",
		Symbol:     "AAPL",
		Expiration: model.TradingDate{Year: 2025, Month: time.October, Day: 17},
		OptionType: model.Call,
		Days:       1,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(testRecord("msg-1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get("msg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "AAPL" || got.OptionType != model.Call || got.Days != 1 {
		t.Errorf("got %+v", got)
	}
	if got.Expiration != (model.TradingDate{Year: 2025, Month: time.October, Day: 17}) {
		t.Errorf("expiration = %s", got.Expiration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	rec := testRecord("msg-1")
	if err := s.Save(rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec.OptionType = model.Put
	rec.Expiration = model.TradingDate{Year: 2025, Month: time.November, Day: 21}
	if err := s.Update(rec); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.Get("msg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OptionType != model.Put {
		t.Errorf("option type = %s, want put", got.OptionType)
	}
	if got.Expiration.Month != time.November {
		t.Errorf("expiration = %s", got.Expiration)
	}

	if err := s.Update(testRecord("missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: got %v, want ErrNotFound", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Save(testRecord(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if err := s.Delete("b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	recs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.MessageID == "b" {
			t.Error("deleted record still listed")
		}
	}
}
