package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/book"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/event"
)

// Archive persists emitted MBP-10 rows to SQLite so reconstructed
// depth can be queried after a run. It is an alternate output sink,
// not book-state persistence: the book itself never survives a run.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) the archive database at path.
func NewArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Single sequential writer; favor throughput over durability knobs.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA cache_size=-2000;", // 2MB cache
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata table: %w", err)
	}

	// One row per emitted snapshot; idx mirrors the output row index.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			idx INTEGER PRIMARY KEY,
			ts_event TEXT NOT NULL,
			action TEXT NOT NULL,
			side TEXT NOT NULL,
			sequence TEXT NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &Archive{db: db}, nil
}

// SaveRow stores one emitted row: trigger metadata in columns, the
// depth view as a JSON payload.
func (a *Archive) SaveRow(ctx context.Context, idx uint64, ev *event.Mbo, d book.Depth) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal depth: %w", err)
	}

	_, err = a.db.ExecContext(ctx,
		"INSERT INTO snapshots (idx, ts_event, action, side, sequence, payload) VALUES (?, ?, ?, ?, ?, ?)",
		idx, ev.TsEvent, string(ev.Action), string(ev.Side), ev.Sequence, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot %d: %w", idx, err)
	}
	return nil
}

// LoadDepth reads one archived depth view back by output row index.
func (a *Archive) LoadDepth(ctx context.Context, idx uint64) (book.Depth, error) {
	var payload []byte
	err := a.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE idx = ?", idx,
	).Scan(&payload)
	if err != nil {
		return book.Depth{}, fmt.Errorf("failed to load snapshot %d: %w", idx, err)
	}

	var d book.Depth
	if err := json.Unmarshal(payload, &d); err != nil {
		return book.Depth{}, fmt.Errorf("failed to unmarshal snapshot %d: %w", idx, err)
	}
	return d, nil
}

// RowCount returns the number of archived rows.
func (a *Archive) RowCount(ctx context.Context) (uint64, error) {
	var n sql.NullInt64
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	if !n.Valid {
		return 0, nil
	}
	return uint64(n.Int64), nil
}

// UpsertMetadata saves a key-value pair to the metadata table.
func (a *Archive) UpsertMetadata(ctx context.Context, key, value string, ts int64) error {
	_, err := a.db.ExecContext(ctx,
		"INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at",
		key, value, ts,
	)
	return err
}

// GetMetadata retrieves a value from the metadata table.
func (a *Archive) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := a.db.QueryRowContext(ctx, "SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}
