package matching

import (
	"matchcore/domain/orderbook"
	"matchcore/infra/sequence"
)

// Engine owns an order book and the trade sequencer. Like the book it is
// single-writer: callers serialize all mutating calls to one instance.
type Engine struct {
	book *orderbook.OrderBook
	seq  *sequence.Sequencer
}

func NewEngine() *Engine {
	return &Engine{
		book: orderbook.NewOrderBook(),
		seq:  sequence.New(0),
	}
}

// Book exposes the underlying order book for queries.
func (e *Engine) Book() *orderbook.OrderBook { return e.book }

// LastSeq returns the sequence of the most recently emitted trade.
func (e *Engine) LastSeq() uint64 { return e.seq.Current() }

// Submit accepts a new incoming order, crosses it against the opposite
// side while its price reaches the opposite best (inclusive boundary),
// and rests any unfilled remainder. It returns the emitted trades in
// sequence order, possibly none.
//
// Validation runs before any matching, so a rejected submit emits no
// trades and leaves the book unchanged.
func (e *Engine) Submit(id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) ([]Trade, error) {
	if price == orderbook.PriceNone {
		return nil, orderbook.ErrInvalidPrice
	}
	if qty == 0 {
		return nil, orderbook.ErrInvalidQuantity
	}
	if e.book.Contains(id) {
		return nil, orderbook.ErrDuplicateOrderID
	}

	var trades []Trade
	remaining := qty
	for remaining > 0 {
		var best *orderbook.PriceLevel
		if side == orderbook.Buy {
			best = e.book.BestAskLevel()
			if best == nil || best.Price() > price {
				break
			}
		} else {
			best = e.book.BestBidLevel()
			if best == nil || best.Price() < price {
				break
			}
		}

		head := best.Head()
		fill := remaining
		if head.Qty < fill {
			fill = head.Qty
		}

		trades = append(trades, Trade{
			AggressorID:   id,
			PassiveID:     head.ID,
			Price:         head.Price,
			Qty:           fill,
			AggressorSide: side,
			Seq:           e.seq.Next(),
		})

		e.book.ExecuteOrder(head.ID, fill)
		remaining -= fill
	}

	if remaining > 0 {
		if err := e.book.AddOrder(id, side, price, remaining); err != nil {
			return trades, err
		}
	}
	return trades, nil
}

// Cancel forwards to the book with identical contract: true if the id
// was resting, false otherwise.
func (e *Engine) Cancel(id orderbook.OrderID) bool {
	return e.book.CancelOrder(id)
}

// Execute applies a direct fill to a resting order, bypassing matching.
func (e *Engine) Execute(id orderbook.OrderID, qty orderbook.Quantity) bool {
	return e.book.ExecuteOrder(id, qty)
}
