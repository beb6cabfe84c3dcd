package orderbook

// Order is a resting order. Everything but Qty is immutable after
// insertion; Qty only decreases, through partial fills.
type Order struct {
	ID    OrderID
	Side  Side
	Price Price
	Qty   Quantity

	next *Order
	prev *Order
}

// Next returns the order behind o in its level's FIFO queue.
func (o *Order) Next() *Order { return o.next }

func (o *Order) reset() { *o = Order{} }
