package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/book"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/codec"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/event"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/storage"
)

// Replayer is the single-threaded event driver: decode one MBO row,
// apply it to the book, snapshot, emit. Events are processed strictly
// in input order; the book state after row k depends only on rows
// 1..k, which makes every run deterministic.
type Replayer struct {
	book *book.Book
	src  *codec.Reader
	sink *codec.Writer
	arch *storage.Archive // optional
	log  *slog.Logger

	rowIdx  uint64 // input rows seen, including a skipped leading reset
	emitted uint64
}

func NewReplayer(src *codec.Reader, sink *codec.Writer, arch *storage.Archive, logger *slog.Logger) *Replayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replayer{
		book: book.New(),
		src:  src,
		sink: sink,
		arch: arch,
		log:  logger,
	}
}

// Book exposes the live book for end-of-run dumps and tests.
func (r *Replayer) Book() *book.Book { return r.book }

// Emitted returns the number of output rows produced so far.
func (r *Replayer) Emitted() uint64 { return r.emitted }

// Run drives the whole stream. This MUST be run from a single
// goroutine; the book has exactly one reader and one writer.
func (r *Replayer) Run(ctx context.Context) error {
	if err := r.sink.WriteHeader(); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, err := r.src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", r.rowIdx+1, err)
		}

		err = r.step(ctx, ev)
		event.Release(ev)
		if err != nil {
			return err
		}
	}

	if err := r.sink.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	r.logSummary()
	return nil
}

// step applies one event and emits its snapshot row.
func (r *Replayer) step(ctx context.Context, ev *event.Mbo) error {
	r.rowIdx++

	// An opening reset row is consumed as a start-from-empty signal and
	// produces no output. The row counter still advances so emitted
	// indices line up with the reference data. A reset anywhere else is
	// treated like any unknown action: pass-through, snapshot emitted.
	if ev.Action == event.ActReset && r.rowIdx == 1 {
		r.book.Clear()
		return nil
	}

	r.apply(ev)

	idx := r.rowIdx - 1
	d := r.book.Snapshot()
	if err := r.sink.WriteRow(idx, ev, d); err != nil {
		return fmt.Errorf("failed to write row %d: %w", idx, err)
	}
	if r.arch != nil {
		if err := r.arch.SaveRow(ctx, idx, ev, d); err != nil {
			return err
		}
	}
	r.emitted++
	return nil
}

// apply dispatches the book mutation for one event. Rows that carry no
// usable side or price leave the book untouched but still produce an
// output row upstream.
func (r *Replayer) apply(ev *event.Mbo) {
	switch ev.Action {
	case event.ActAdd:
		if s, ok := bookSide(ev.Side); ok && ev.HasPrice {
			r.book.Add(s, ev.Price, ev.Size)
		}
	case event.ActDelete:
		if s, ok := bookSide(ev.Side); ok && ev.HasPrice {
			r.book.Delete(s, ev.Price, ev.Size)
		}
	case event.ActTrade:
		// A trade with side N must not alter the book; its F/C
		// companions in the MBO stream are pass-through as well.
		if s, ok := bookSide(ev.Side); ok && ev.HasPrice {
			r.book.ConsumeTrade(s, ev.Price, ev.Size)
		}
	default:
		// R (non-leading), F, C, M and unknown codes: no mutation.
	}
}

func bookSide(c event.SideCode) (book.Side, bool) {
	switch c {
	case event.SideBid:
		return book.Bid, true
	case event.SideAsk:
		return book.Ask, true
	default:
		return 0, false
	}
}

func (r *Replayer) logSummary() {
	attrs := []any{
		slog.Uint64("rows_in", r.rowIdx),
		slog.Uint64("rows_out", r.emitted),
		slog.Int("bid_levels", r.book.Len(book.Bid)),
		slog.Int("ask_levels", r.book.Len(book.Ask)),
	}
	if best, ok := r.book.Best(book.Bid); ok {
		attrs = append(attrs, slog.String("best_bid", best.Price.String()))
	}
	if best, ok := r.book.Best(book.Ask); ok {
		attrs = append(attrs, slog.String("best_ask", best.Price.String()))
	}
	r.log.Info("Replay complete", attrs...)
}
