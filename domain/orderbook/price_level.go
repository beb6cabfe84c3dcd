package orderbook

// PriceLevel aggregates all resting orders at one exact price on one
// side of the book. Orders queue in strict arrival order, so the head
// is always the order with time priority.
type PriceLevel struct {
	price    Price
	head     *Order
	tail     *Order
	totalQty Quantity
	count    int
}

func (l *PriceLevel) Price() Price       { return l.price }
func (l *PriceLevel) TotalQty() Quantity { return l.totalQty }
func (l *PriceLevel) Len() int           { return l.count }

// Head returns the order with time priority at this level.
func (l *PriceLevel) Head() *Order { return l.head }

func (l *PriceLevel) enqueue(o *Order) {
	if l.head == nil {
		l.head = o
	} else {
		l.tail.next = o
		o.prev = l.tail
	}
	l.tail = o
	l.totalQty += o.Qty
	l.count++
}

// unlink removes o from the queue. o must be a member of this level.
func (l *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next, o.prev = nil, nil
	l.totalQty -= o.Qty
	l.count--
}

// reduce lowers the level total after a partial fill of a member order.
// The order's own Qty must be reduced by the same amount by the caller.
func (l *PriceLevel) reduce(q Quantity) {
	l.totalQty -= q
}
