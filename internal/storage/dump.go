package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/book"
)

// BookDump is the final book state written for post-mortem inspection.
type BookDump struct {
	Rows   uint64     `json:"rows"` // output rows emitted
	TsUnix int64      `json:"ts"`   // dump creation timestamp (Unix seconds)
	Depth  book.Depth `json:"depth"`
}

// WriteBookDump writes the end-of-replay depth view to path as JSON.
func WriteBookDump(path string, rows uint64, d book.Depth) error {
	dump := BookDump{
		Rows:   rows,
		TsUnix: time.Now().Unix(),
		Depth:  d,
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal book dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write book dump: %w", err)
	}

	slog.Info("Book dump written",
		slog.Uint64("rows", rows),
		slog.String("path", path))
	return nil
}

// ReadBookDump loads a dump back, mainly for tooling and tests.
func ReadBookDump(path string) (*BookDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read book dump: %w", err)
	}
	var dump BookDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to unmarshal book dump: %w", err)
	}
	return &dump, nil
}
