// Package handle is the stable boundary through which external callers
// drive engine instances: an opaque handle table in place of the raw
// pointers a C ABI would hand out. All handle bookkeeping lives here;
// the book and engine never see an invalid instance. Results are flags
// and sentinels rather than errors, matching the boundary contract.
//
// The table only guards its own map. Mutating calls against a single
// handle must still be serialized by the caller, exactly as with a
// directly owned engine.
package handle

import (
	"sync"

	"matchcore/domain/matching"
	"matchcore/domain/orderbook"
)

// Side values at the boundary.
const (
	SideBuy  uint8 = 0
	SideSell uint8 = 1
)

// PriceNone is the sentinel "no best price" value.
const PriceNone = uint64(orderbook.PriceNone)

// Handle opaquely identifies one engine instance. The zero Handle is
// never issued.
type Handle uint64

var (
	mu      sync.RWMutex
	engines = make(map[Handle]*matching.Engine)
	nextID  Handle
)

// Create allocates a new engine instance and returns its handle.
func Create() Handle {
	mu.Lock()
	defer mu.Unlock()
	nextID++
	h := nextID
	engines[h] = matching.NewEngine()
	return h
}

// Destroy releases the instance behind h. Destroying an unknown or
// already destroyed handle reports false. Any handle copies become
// dangling by contract; using them reports failure, never a crash.
func Destroy(h Handle) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := engines[h]; !ok {
		return false
	}
	delete(engines, h)
	return true
}

func lookup(h Handle) (*matching.Engine, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := engines[h]
	return e, ok
}

func side(s uint8) orderbook.Side {
	if s == SideSell {
		return orderbook.Sell
	}
	return orderbook.Buy
}

// Submit runs an order through matching and returns the number of
// trades generated. Unknown handles and rejected orders yield 0.
func Submit(h Handle, id uint64, s uint8, price uint64, qty uint64) int {
	e, ok := lookup(h)
	if !ok {
		return 0
	}
	trades, err := e.Submit(orderbook.OrderID(id), side(s), orderbook.Price(price), orderbook.Quantity(qty))
	if err != nil {
		return 0
	}
	return len(trades)
}

// AddOrder rests an order directly in the book, bypassing matching.
func AddOrder(h Handle, id uint64, s uint8, price uint64, qty uint64) bool {
	e, ok := lookup(h)
	if !ok {
		return false
	}
	return e.Book().AddOrder(orderbook.OrderID(id), side(s), orderbook.Price(price), orderbook.Quantity(qty)) == nil
}

// CancelOrder reports whether the id was resting and is now removed.
func CancelOrder(h Handle, id uint64) bool {
	e, ok := lookup(h)
	if !ok {
		return false
	}
	return e.Cancel(orderbook.OrderID(id))
}

// ExecuteOrder applies a direct fill, capped at the order's remainder.
func ExecuteOrder(h Handle, id uint64, qty uint64) bool {
	e, ok := lookup(h)
	if !ok {
		return false
	}
	return e.Execute(orderbook.OrderID(id), orderbook.Quantity(qty))
}

// BestBid returns the best bid price, PriceNone if no bids or the
// handle is unknown.
func BestBid(h Handle) uint64 {
	e, ok := lookup(h)
	if !ok {
		return PriceNone
	}
	return uint64(e.Book().BestBid())
}

// BestAsk returns the best ask price, PriceNone if no asks or the
// handle is unknown.
func BestAsk(h Handle) uint64 {
	e, ok := lookup(h)
	if !ok {
		return PriceNone
	}
	return uint64(e.Book().BestAsk())
}

// BidQuantityAt returns resting bid quantity at an exact price.
func BidQuantityAt(h Handle, price uint64) uint64 {
	e, ok := lookup(h)
	if !ok {
		return 0
	}
	return uint64(e.Book().BidQuantityAt(orderbook.Price(price)))
}

// AskQuantityAt returns resting ask quantity at an exact price.
func AskQuantityAt(h Handle, price uint64) uint64 {
	e, ok := lookup(h)
	if !ok {
		return 0
	}
	return uint64(e.Book().AskQuantityAt(orderbook.Price(price)))
}

// PriceFromDouble converts a float price to fixed point, rounding half
// up at four decimals.
func PriceFromDouble(v float64) uint64 {
	return uint64(orderbook.PriceFromFloat(v))
}

// PriceToDouble converts a fixed-point price back to a float.
func PriceToDouble(p uint64) float64 {
	return orderbook.PriceToFloat(orderbook.Price(p))
}
