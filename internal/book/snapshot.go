package book

// DepthLevels is the fixed width of one snapshot side.
const DepthLevels = 10

// Depth is a value-type projection of the top levels per side,
// best-to-worst, padded at the tail with zero-value sentinel levels
// when fewer than DepthLevels exist. It does not alias book state.
type Depth struct {
	Bids [DepthLevels]Level `json:"bids"`
	Asks [DepthLevels]Level `json:"asks"`
}

// Snapshot renders the book exactly as of the moment of the call.
// Pure read; the book is never mutated.
func (b *Book) Snapshot() Depth {
	var d Depth
	topLevels(b.bids, &d.Bids)
	topLevels(b.asks, &d.Asks)
	return d
}

func topLevels(l *ladder, out *[DepthLevels]Level) {
	i := 0
	l.tree.Ascend(func(lvl Level) bool {
		if i >= DepthLevels {
			return false
		}
		out[i] = lvl
		i++
		return true
	})
}
