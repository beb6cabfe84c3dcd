package orderbook

import "matchcore/infra/memory"

// OrderBook owns the resting order set for one instrument.
//
// Invariants held after every public operation:
//   - every id in the index sits in exactly one level queue on its side
//   - bestBid/bestAsk always equal the true extremes (PriceNone if empty)
//   - no level exists with zero total quantity
type OrderBook struct {
	orders map[OrderID]*Order
	bids   *levelTree
	asks   *levelTree

	bestBid Price
	bestAsk Price

	pool *memory.Pool[Order]
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders:  make(map[OrderID]*Order, 1024),
		bids:    newLevelTree(),
		asks:    newLevelTree(),
		bestBid: PriceNone,
		bestAsk: PriceNone,
		pool:    memory.NewPool(func() *Order { return &Order{} }),
	}
}

// AddOrder rests a new order in the book. The id must not be resident,
// the price must not be the sentinel, and the quantity must be positive;
// violations are rejected with the book untouched.
func (b *OrderBook) AddOrder(id OrderID, side Side, price Price, qty Quantity) error {
	if price == PriceNone {
		return ErrInvalidPrice
	}
	if qty == 0 {
		return ErrInvalidQuantity
	}
	if _, dup := b.orders[id]; dup {
		return ErrDuplicateOrderID
	}

	o := b.pool.Get()
	*o = Order{ID: id, Side: side, Price: price, Qty: qty}
	b.orders[id] = o

	if side == Buy {
		b.bids.Upsert(price).enqueue(o)
		if b.bestBid == PriceNone || price > b.bestBid {
			b.bestBid = price
		}
	} else {
		b.asks.Upsert(price).enqueue(o)
		if b.bestAsk == PriceNone || price < b.bestAsk {
			b.bestAsk = price
		}
	}
	return nil
}

// CancelOrder removes a resting order. It reports whether the id was
// present; cancelling an absent id is a no-op.
func (b *OrderBook) CancelOrder(id OrderID) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}
	b.remove(o)
	return true
}

// ExecuteOrder applies a fill capped at the order's remaining quantity.
// A fill that exhausts the order removes it from the book; qty 0 is a
// no-op. Reports whether the id was present.
func (b *OrderBook) ExecuteOrder(id OrderID, qty Quantity) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}

	exec := qty
	if exec > o.Qty {
		exec = o.Qty
	}
	switch {
	case exec == 0:
	case exec == o.Qty:
		b.remove(o)
	default:
		o.Qty -= exec
		b.side(o.Side).Find(o.Price).reduce(exec)
	}
	return true
}

// BestBid returns the highest resting bid price, PriceNone if no bids.
func (b *OrderBook) BestBid() Price { return b.bestBid }

// BestAsk returns the lowest resting ask price, PriceNone if no asks.
func (b *OrderBook) BestAsk() Price { return b.bestAsk }

// QuantityAt returns the aggregate resting quantity at an exact price,
// 0 if no level exists there.
func (b *OrderBook) QuantityAt(side Side, price Price) Quantity {
	lvl := b.side(side).Find(price)
	if lvl == nil {
		return 0
	}
	return lvl.totalQty
}

func (b *OrderBook) BidQuantityAt(price Price) Quantity { return b.QuantityAt(Buy, price) }
func (b *OrderBook) AskQuantityAt(price Price) Quantity { return b.QuantityAt(Sell, price) }

// Contains reports whether an order id is resident.
func (b *OrderBook) Contains(id OrderID) bool {
	_, ok := b.orders[id]
	return ok
}

// Lookup returns a copy of a resting order.
func (b *OrderBook) Lookup(id OrderID) (Order, bool) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}
	return Order{ID: o.ID, Side: o.Side, Price: o.Price, Qty: o.Qty}, true
}

// Len returns the number of resting orders.
func (b *OrderBook) Len() int { return len(b.orders) }

// BestBidLevel returns the bid level with price priority, nil if empty.
func (b *OrderBook) BestBidLevel() *PriceLevel { return b.bids.Max() }

// BestAskLevel returns the ask level with price priority, nil if empty.
func (b *OrderBook) BestAskLevel() *PriceLevel { return b.asks.Min() }

// BidsWalk visits bid levels best to worst until fn returns false.
func (b *OrderBook) BidsWalk(fn func(*PriceLevel) bool) { b.bids.WalkDesc(fn) }

// AsksWalk visits ask levels best to worst until fn returns false.
func (b *OrderBook) AsksWalk(fn func(*PriceLevel) bool) { b.asks.WalkAsc(fn) }

func (b *OrderBook) side(s Side) *levelTree {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// remove unlinks an order from its level, drops the level if it empties,
// refreshes the cached extreme, and recycles the order.
func (b *OrderBook) remove(o *Order) {
	delete(b.orders, o.ID)

	tree := b.side(o.Side)
	lvl := tree.Find(o.Price)
	lvl.unlink(o)

	if lvl.count == 0 {
		tree.Delete(o.Price)
		if o.Side == Buy && o.Price == b.bestBid {
			b.bestBid = levelPrice(tree.Max())
		} else if o.Side == Sell && o.Price == b.bestAsk {
			b.bestAsk = levelPrice(tree.Min())
		}
	}

	o.reset()
	b.pool.Put(o)
}

func levelPrice(l *PriceLevel) Price {
	if l == nil {
		return PriceNone
	}
	return l.price
}
