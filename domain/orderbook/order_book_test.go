package orderbook

import "testing"

// checkBook verifies the structural invariants that must hold after
// every public operation: cached extremes match the true extremes,
// level totals match their queues, and no empty level exists.
func checkBook(t *testing.T, b *OrderBook) {
	t.Helper()

	verify := func(side Side, walk func(func(*PriceLevel) bool), cached Price) int {
		orders := 0
		first := true
		walk(func(l *PriceLevel) bool {
			if l.TotalQty() == 0 || l.Len() == 0 {
				t.Fatalf("%v level %d with zero quantity", side, l.Price())
			}
			if first {
				if l.Price() != cached {
					t.Fatalf("%v cached best %d, true best %d", side, cached, l.Price())
				}
				first = false
			}
			var sum Quantity
			for o := l.Head(); o != nil; o = o.Next() {
				if o.Side != side {
					t.Fatalf("order %d on wrong side", o.ID)
				}
				if !b.Contains(o.ID) {
					t.Fatalf("order %d queued but not indexed", o.ID)
				}
				sum += o.Qty
				orders++
			}
			if sum != l.TotalQty() {
				t.Fatalf("%v level %d total %d, queue sums to %d", side, l.Price(), l.TotalQty(), sum)
			}
			return true
		})
		if first && cached != PriceNone {
			t.Fatalf("%v side empty but cached best is %d", side, cached)
		}
		return orders
	}

	n := verify(Buy, b.BidsWalk, b.BestBid())
	n += verify(Sell, b.AsksWalk, b.BestAsk())
	if n != b.Len() {
		t.Fatalf("index holds %d orders, levels hold %d", b.Len(), n)
	}
}

func TestEmptyBook(t *testing.T) {
	b := NewOrderBook()
	if b.BestBid() != PriceNone {
		t.Errorf("BestBid = %d, want sentinel", b.BestBid())
	}
	if b.BestAsk() != PriceNone {
		t.Errorf("BestAsk = %d, want sentinel", b.BestAsk())
	}
	if q := b.BidQuantityAt(10000); q != 0 {
		t.Errorf("BidQuantityAt = %d, want 0", q)
	}
	if q := b.AskQuantityAt(10000); q != 0 {
		t.Errorf("AskQuantityAt = %d, want 0", q)
	}
}

func TestAddRestingBuy(t *testing.T) {
	b := NewOrderBook()
	if err := b.AddOrder(1, Buy, 10000, 100); err != nil {
		t.Fatalf("AddOrder: %v", err)
	}
	if b.BestBid() != 10000 {
		t.Errorf("BestBid = %d, want 10000", b.BestBid())
	}
	if b.BestAsk() != PriceNone {
		t.Errorf("BestAsk = %d, want sentinel", b.BestAsk())
	}
	if q := b.QuantityAt(Buy, 10000); q != 100 {
		t.Errorf("QuantityAt = %d, want 100", q)
	}
	checkBook(t, b)
}

func TestBestBidIsHighest(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)
	_ = b.AddOrder(2, Buy, 10100, 100)
	_ = b.AddOrder(3, Buy, 9900, 100)
	if b.BestBid() != 10100 {
		t.Errorf("BestBid = %d, want 10100", b.BestBid())
	}
	checkBook(t, b)
}

func TestBestAskIsLowest(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Sell, 10200, 100)
	_ = b.AddOrder(2, Sell, 10100, 100)
	_ = b.AddOrder(3, Sell, 10300, 100)
	if b.BestAsk() != 10100 {
		t.Errorf("BestAsk = %d, want 10100", b.BestAsk())
	}
	checkBook(t, b)
}

func TestSamePriceAggregatesAndCancels(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)
	_ = b.AddOrder(2, Buy, 10000, 200)
	if q := b.BidQuantityAt(10000); q != 300 {
		t.Fatalf("aggregate = %d, want 300", q)
	}
	if !b.CancelOrder(1) {
		t.Fatal("cancel #1 reported not found")
	}
	if q := b.BidQuantityAt(10000); q != 200 {
		t.Errorf("after cancel = %d, want 200", q)
	}
	checkBook(t, b)
}

func TestCancelRemovesEmptyLevel(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)
	b.CancelOrder(1)
	if b.BestBid() != PriceNone {
		t.Errorf("BestBid = %d, want sentinel", b.BestBid())
	}
	if q := b.BidQuantityAt(10000); q != 0 {
		t.Errorf("quantity = %d, want 0", q)
	}
	checkBook(t, b)
}

func TestCancelRefreshesBestFromNextLevel(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10100, 100)
	_ = b.AddOrder(2, Buy, 10000, 100)
	_ = b.AddOrder(3, Sell, 10200, 100)
	_ = b.AddOrder(4, Sell, 10300, 100)

	b.CancelOrder(1)
	if b.BestBid() != 10000 {
		t.Errorf("BestBid = %d, want 10000", b.BestBid())
	}
	b.CancelOrder(3)
	if b.BestAsk() != 10300 {
		t.Errorf("BestAsk = %d, want 10300", b.BestAsk())
	}
	checkBook(t, b)
}

func TestCancelAbsentIsNoOp(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)

	if b.CancelOrder(999) {
		t.Error("cancel of absent id reported found")
	}
	if b.BestBid() != 10000 || b.BestAsk() != PriceNone {
		t.Error("absent cancel disturbed best prices")
	}
	if q := b.BidQuantityAt(10000); q != 100 {
		t.Errorf("absent cancel disturbed level quantity: %d", q)
	}
	checkBook(t, b)
}

func TestPartialThenFullExecution(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)

	if !b.ExecuteOrder(1, 30) {
		t.Fatal("execute reported not found")
	}
	if q := b.BidQuantityAt(10000); q != 70 {
		t.Errorf("after partial = %d, want 70", q)
	}
	checkBook(t, b)

	if !b.ExecuteOrder(1, 70) {
		t.Fatal("execute reported not found")
	}
	if b.BestBid() != PriceNone {
		t.Errorf("BestBid = %d, want sentinel after full fill", b.BestBid())
	}
	if b.Contains(1) {
		t.Error("fully executed order still indexed")
	}
	checkBook(t, b)
}

func TestExecuteCapsAtRemaining(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Sell, 10100, 50)
	if !b.ExecuteOrder(1, 500) {
		t.Fatal("execute reported not found")
	}
	if b.Contains(1) || b.BestAsk() != PriceNone {
		t.Error("oversized execute did not fully remove the order")
	}
	checkBook(t, b)
}

func TestExecuteZeroIsFoundNoOp(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)
	if !b.ExecuteOrder(1, 0) {
		t.Error("zero execute on present id reported not found")
	}
	if q := b.BidQuantityAt(10000); q != 100 {
		t.Errorf("zero execute changed quantity: %d", q)
	}
	if b.ExecuteOrder(999, 0) {
		t.Error("zero execute on absent id reported found")
	}
	checkBook(t, b)
}

func TestExecuteAbsent(t *testing.T) {
	b := NewOrderBook()
	if b.ExecuteOrder(42, 10) {
		t.Error("execute of absent id reported found")
	}
}

func TestAddRejectsDuplicateID(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 100)
	err := b.AddOrder(1, Sell, 10100, 50)
	if err != ErrDuplicateOrderID {
		t.Fatalf("err = %v, want ErrDuplicateOrderID", err)
	}
	if b.BestAsk() != PriceNone {
		t.Error("rejected add leaked into the ask side")
	}
	if q := b.BidQuantityAt(10000); q != 100 {
		t.Errorf("rejected add disturbed the resident order: %d", q)
	}
	checkBook(t, b)
}

func TestAddRejectsSentinelPrice(t *testing.T) {
	b := NewOrderBook()
	if err := b.AddOrder(1, Buy, PriceNone, 100); err != ErrInvalidPrice {
		t.Fatalf("err = %v, want ErrInvalidPrice", err)
	}
	if b.Len() != 0 {
		t.Error("rejected add left state behind")
	}
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	b := NewOrderBook()
	if err := b.AddOrder(1, Buy, 10000, 0); err != ErrInvalidQuantity {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
	if b.Len() != 0 {
		t.Error("rejected add left state behind")
	}
}

func TestLevelQueueIsFIFO(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(1, Buy, 10000, 10)
	_ = b.AddOrder(2, Buy, 10000, 20)
	_ = b.AddOrder(3, Buy, 10000, 30)

	lvl := b.BestBidLevel()
	want := []OrderID{1, 2, 3}
	i := 0
	for o := lvl.Head(); o != nil; o = o.Next() {
		if o.ID != want[i] {
			t.Fatalf("queue position %d holds order %d, want %d", i, o.ID, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Fatalf("queue holds %d orders, want %d", i, len(want))
	}

	// Removing the middle order keeps arrival order for the rest.
	b.CancelOrder(2)
	if h := lvl.Head(); h.ID != 1 || h.Next().ID != 3 {
		t.Error("cancel broke FIFO order")
	}
	checkBook(t, b)
}

func TestLookup(t *testing.T) {
	b := NewOrderBook()
	_ = b.AddOrder(7, Sell, 10250, 40)

	o, ok := b.Lookup(7)
	if !ok || o.Price != 10250 || o.Qty != 40 || o.Side != Sell {
		t.Errorf("Lookup = %+v, %v", o, ok)
	}
	if _, ok := b.Lookup(8); ok {
		t.Error("Lookup of absent id reported found")
	}
}

func TestChurnKeepsInvariants(t *testing.T) {
	b := NewOrderBook()
	id := OrderID(0)

	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			id++
			side := Buy
			price := Price(10000 - id%7*10)
			if id%2 == 0 {
				side = Sell
				price = Price(10100 + id%7*10)
			}
			_ = b.AddOrder(id, side, price, Quantity(10+id%90))
		}
		for i := OrderID(0); i < 10; i++ {
			b.CancelOrder(id - i*2)
		}
		b.ExecuteOrder(id-1, 5)
		checkBook(t, b)
	}
}
