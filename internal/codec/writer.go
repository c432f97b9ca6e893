package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/book"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/event"
)

// Writer encodes MBP-10 snapshot rows. Fields never contain commas or
// quotes, so rows are emitted directly without CSV escaping, matching
// the reference output byte-for-byte.
type Writer struct {
	bw *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteHeader emits the column header: the echoed trigger fields, then
// ten bid (px, sz, ct) triples, ten ask triples, symbol and order_id.
func (w *Writer) WriteHeader() error {
	var sb strings.Builder
	sb.WriteString(",ts_recv,ts_event,rtype,publisher_id,instrument_id,action,side,depth,price,size,flags,ts_in_delta,sequence")
	for i := 0; i < book.DepthLevels; i++ {
		fmt.Fprintf(&sb, ",bid_px_%02d,bid_sz_%02d,bid_ct_%02d", i, i, i)
	}
	for i := 0; i < book.DepthLevels; i++ {
		fmt.Fprintf(&sb, ",ask_px_%02d,ask_sz_%02d,ask_ct_%02d", i, i, i)
	}
	sb.WriteString(",symbol,order_id\n")
	_, err := w.bw.WriteString(sb.String())
	return err
}

// WriteRow emits one output row: the triggering event's metadata
// echoed unchanged, then the depth snapshot. A trigger whose price
// field was blank echoes blank, never a synthesized zero.
func (w *Writer) WriteRow(idx uint64, ev *event.Mbo, d book.Depth) error {
	w.bw.WriteString(strconv.FormatUint(idx, 10))
	w.field(ev.TsRecv)
	w.field(ev.TsEvent)
	w.field(ev.RType)
	w.field(ev.PublisherID)
	w.field(ev.InstrumentID)
	w.code(byte(ev.Action))
	w.code(byte(ev.Side))
	w.field("0") // depth column is fixed at 0 for MBO-derived rows
	if ev.HasPrice {
		w.field(ev.Price.String())
	} else {
		w.field("")
	}
	w.field(strconv.FormatInt(ev.Size, 10))
	w.field(ev.Flags)
	w.field(ev.TsInDelta)
	w.field(ev.Sequence)

	for _, lvl := range d.Bids {
		w.level(lvl)
	}
	for _, lvl := range d.Asks {
		w.level(lvl)
	}

	w.field(ev.Symbol)
	w.field(ev.OrderID)
	return w.bw.WriteByte('\n')
}

func (w *Writer) field(s string) {
	w.bw.WriteByte(',')
	w.bw.WriteString(s)
}

func (w *Writer) code(c byte) {
	w.bw.WriteByte(',')
	if c != 0 {
		w.bw.WriteByte(c)
	}
}

// level renders one (px, sz, ct) triple; the padding sentinel renders
// as a blank price with zero size and count.
func (w *Writer) level(lvl book.Level) {
	if lvl.Empty() {
		w.bw.WriteString(",,0,0")
		return
	}
	w.bw.WriteByte(',')
	w.bw.WriteString(lvl.Price.String())
	w.bw.WriteByte(',')
	w.bw.WriteString(strconv.FormatInt(lvl.Qty, 10))
	w.bw.WriteByte(',')
	w.bw.WriteString(strconv.FormatInt(lvl.Count, 10))
}

// Flush drains the buffer to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
