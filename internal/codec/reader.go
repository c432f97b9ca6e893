package codec

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/event"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/pkg/quant"
)

// mbo.csv column layout (Databento MBO export).
const (
	colTsRecv = iota
	colTsEvent
	colRType
	colPublisherID
	colInstrumentID
	colAction
	colSide
	colPrice
	colSize
	colChannelID
	colOrderID
	colFlags
	colTsInDelta
	colSequence
	colSymbol
	colCount
)

// Reader decodes MBO rows from a CSV stream. The header row is
// consumed at construction time.
type Reader struct {
	cr *csv.Reader
}

// NewReader wraps r and consumes the header row. An unreadable or
// empty stream is a structural failure and surfaces as an error.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("failed to read mbo header: %w", err)
	}
	return &Reader{cr: cr}, nil
}

// Next decodes the next row into a pooled event. Returns io.EOF at end
// of stream. The caller releases the event when done with it.
func (r *Reader) Next() (*event.Mbo, error) {
	rec, err := r.cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read mbo row: %w", err)
	}
	if len(rec) < colCount {
		return nil, fmt.Errorf("mbo row has %d columns, want %d", len(rec), colCount)
	}

	ev := event.Acquire()
	ev.TsRecv = rec[colTsRecv]
	ev.TsEvent = rec[colTsEvent]
	ev.RType = rec[colRType]
	ev.PublisherID = rec[colPublisherID]
	ev.InstrumentID = rec[colInstrumentID]
	ev.Action = actionOf(rec[colAction])
	ev.Side = sideOf(rec[colSide])
	ev.Price, ev.HasPrice = quant.ParsePrice(rec[colPrice])
	ev.Size = sizeOf(rec[colSize])
	ev.ChannelID = rec[colChannelID]
	ev.OrderID = rec[colOrderID]
	ev.Flags = rec[colFlags]
	ev.TsInDelta = rec[colTsInDelta]
	ev.Sequence = rec[colSequence]
	ev.Symbol = rec[colSymbol]
	return ev, nil
}

func actionOf(s string) event.Action {
	if s == "" {
		return 0
	}
	return event.Action(s[0])
}

func sideOf(s string) event.SideCode {
	if s == "" {
		return event.SideNone
	}
	return event.SideCode(s[0])
}

// sizeOf is deliberately lenient: a blank or garbage size decodes to
// zero, which downstream treats as a no-op rather than an error.
func sizeOf(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
