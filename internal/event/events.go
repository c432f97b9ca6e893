package event

import (
	"sync"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/pkg/quant"
)

// Action is the single-character MBO action code.
type Action byte

const (
	ActAdd    Action = 'A'
	ActDelete Action = 'D'
	ActTrade  Action = 'T'
	ActReset  Action = 'R'
	ActFill   Action = 'F'
	ActCancel Action = 'C'
	ActModify Action = 'M'
)

// SideCode is the single-character MBO side indicator.
type SideCode byte

const (
	SideBid  SideCode = 'B'
	SideAsk  SideCode = 'A'
	SideNone SideCode = 'N'
)

// Mbo is one decoded market-by-order row.
//
// Only Action, Side, Price and Size drive the book. Everything else is
// pass-through metadata kept as the raw field text so the output can
// echo it unchanged; the core never interprets it.
type Mbo struct {
	TsRecv       string
	TsEvent      string
	RType        string
	PublisherID  string
	InstrumentID string
	Action       Action
	Side         SideCode
	Price        quant.PriceE8
	HasPrice     bool // false when the price field was blank/unparseable
	Size         int64
	ChannelID    string
	OrderID      string
	Flags        string
	TsInDelta    string
	Sequence     string
	Symbol       string
}

var pool = sync.Pool{
	New: func() any { return new(Mbo) },
}

// Acquire returns a zeroed event. A replay touches millions of rows;
// recycling keeps the decode loop allocation-free.
func Acquire() *Mbo {
	return pool.Get().(*Mbo)
}

// Release resets the event and returns it to the pool. The caller must
// not retain any reference to it.
func Release(ev *Mbo) {
	*ev = Mbo{}
	pool.Put(ev)
}
