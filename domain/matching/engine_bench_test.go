package matching

import (
	"testing"

	"matchcore/domain/orderbook"
)

func BenchmarkSubmitResting(b *testing.B) {
	e := NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Bids stay below asks so nothing crosses.
		if i%2 == 0 {
			_, _ = e.Submit(orderbook.OrderID(i), orderbook.Buy, orderbook.Price(90_000+i%1_000), 100)
		} else {
			_, _ = e.Submit(orderbook.OrderID(i), orderbook.Sell, orderbook.Price(110_000+i%1_000), 100)
		}
	}
}

func BenchmarkSubmitCrossing(b *testing.B) {
	e := NewEngine()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternating sides at one price so every second order trades.
		side := orderbook.Buy
		if i%2 == 1 {
			side = orderbook.Sell
		}
		_, _ = e.Submit(orderbook.OrderID(i), side, 100_000, 100)
	}
}
