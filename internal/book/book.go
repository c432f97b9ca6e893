package book

import (
	"github.com/google/btree"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/pkg/quant"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/pkg/safe"
)

// Side identifies one half of the book.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Opposite returns the resting side consumed by an aggressor on s.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// Level aggregates all resting quantity at a single price.
// A level held in a ladder always has Qty > 0; levels whose quantity
// reaches zero or below are removed immediately.
type Level struct {
	Price quant.PriceE8 `json:"price"`
	Qty   int64         `json:"qty"`
	Count int64         `json:"count"`
}

// Empty reports whether l is the padding sentinel of a depth snapshot.
// Real levels always carry positive quantity, so the zero value can
// never collide with one.
func (l Level) Empty() bool {
	return l.Qty == 0 && l.Count == 0
}

// ladder is one side of the book. The btree's less function is chosen
// so that Ascend always walks levels best-to-worst for that side:
// highest price first on bids, lowest first on asks. The trade
// consumption walk and the depth snapshot both rely on this.
type ladder struct {
	tree *btree.BTreeG[Level]
}

func newLadder(less func(a, b quant.PriceE8) bool) *ladder {
	return &ladder{
		tree: btree.NewG(32, func(a, b Level) bool {
			return less(a.Price, b.Price)
		}),
	}
}

// Book is the in-memory MBP state: one aggregated price ladder per
// side. It is not safe for concurrent use; the replay loop is the
// single reader and writer.
type Book struct {
	bids *ladder // sorted desc by price
	asks *ladder // sorted asc by price
}

func New() *Book {
	return &Book{
		bids: newLadder(func(a, b quant.PriceE8) bool { return a > b }),
		asks: newLadder(func(a, b quant.PriceE8) bool { return a < b }),
	}
}

func (b *Book) side(s Side) *ladder {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

// Add aggregates an order into the level at px, creating the level if
// needed. Non-positive quantities are a no-op, not an error.
func (b *Book) Add(s Side, px quant.PriceE8, qty int64) {
	if qty <= 0 {
		return
	}
	l := b.side(s)
	cur, ok := l.tree.Get(Level{Price: px})
	if !ok {
		l.tree.ReplaceOrInsert(Level{Price: px, Qty: qty, Count: 1})
		return
	}
	cur.Qty = safe.Add(cur.Qty, qty)
	cur.Count++
	l.tree.ReplaceOrInsert(cur)
}

// Delete removes one order's worth of quantity from the level at px.
// The order count drops by exactly one regardless of the size removed.
// Deleting against a missing level is tolerated silently; so are
// non-positive quantities.
func (b *Book) Delete(s Side, px quant.PriceE8, qty int64) {
	if qty <= 0 {
		return
	}
	l := b.side(s)
	cur, ok := l.tree.Get(Level{Price: px})
	if !ok {
		return
	}
	cur.Qty = safe.Sub(cur.Qty, qty)
	cur.Count--
	if cur.Qty <= 0 {
		l.tree.Delete(Level{Price: px})
		return
	}
	l.tree.ReplaceOrInsert(cur)
}

// Replace applies a modify as delete-old then add-new. The MBO feed
// this tool targets never emits modifies against the book, so the
// replay engine does not dispatch here; the operation exists for
// callers driving the book directly.
func (b *Book) Replace(s Side, oldPx quant.PriceE8, oldQty int64, newPx quant.PriceE8, newQty int64) {
	b.Delete(s, oldPx, oldQty)
	b.Add(s, newPx, newQty)
}

// Clear removes every level on both sides.
func (b *Book) Clear() {
	b.bids.tree.Clear(false)
	b.asks.tree.Clear(false)
}

// Len returns the number of levels resting on side s.
func (b *Book) Len(s Side) int {
	return b.side(s).tree.Len()
}

// Best returns the most favorable level on side s, if any.
func (b *Book) Best(s Side) (Level, bool) {
	return b.side(s).tree.Min()
}

// ConsumeTrade removes traded liquidity from the side opposite the
// aggressor. The walk runs best-to-worst and stops at the first level
// less favorable to the resting side than the trade price: a bid is
// eligible while its price >= px, an ask while its price <= px. Each
// level touched loses min(remaining, level qty) quantity and exactly
// one order count. Any remainder left when eligible levels run out is
// dropped; the book does not track unfilled trades.
func (b *Book) ConsumeTrade(aggressor Side, px quant.PriceE8, qty int64) {
	if qty <= 0 {
		return
	}
	rest := b.side(aggressor.Opposite())

	// Mutating the tree inside Ascend is not allowed, so collect the
	// fills first and apply them after the walk.
	type fill struct {
		lvl  Level
		take int64
	}
	var fills []fill
	remaining := qty

	rest.tree.Ascend(func(lvl Level) bool {
		if remaining <= 0 {
			return false
		}
		if aggressor == Ask && lvl.Price < px {
			return false
		}
		if aggressor == Bid && lvl.Price > px {
			return false
		}
		take := remaining
		if lvl.Qty < take {
			take = lvl.Qty
		}
		fills = append(fills, fill{lvl: lvl, take: take})
		remaining -= take
		return true
	})

	for _, f := range fills {
		f.lvl.Qty = safe.Sub(f.lvl.Qty, f.take)
		f.lvl.Count--
		if f.lvl.Qty <= 0 {
			rest.tree.Delete(Level{Price: f.lvl.Price})
		} else {
			rest.tree.ReplaceOrInsert(f.lvl)
		}
	}
}
