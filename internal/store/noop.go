package store

// NoopStore is a no-op implementation used when SQLite is not configured.
// Charts still post, but buttons die with the process and nothing refreshes.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Save(_ *ChartRecord) error           { return nil }
func (n *NoopStore) Get(_ string) (*ChartRecord, error)  { return nil, ErrNotFound }
func (n *NoopStore) Update(_ *ChartRecord) error         { return nil }
func (n *NoopStore) Delete(_ string) error               { return nil }
func (n *NoopStore) List() ([]*ChartRecord, error)       { return nil, nil }
func (n *NoopStore) Close() error                        { return nil }
