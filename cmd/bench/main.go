// Command bench measures the matching core through its public API:
// add, cancel, execute, best-price queries, and full submit throughput.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"matchcore/domain/matching"
	"matchcore/domain/orderbook"
)

const warmupOps = 1_000

func main() {
	ops := flag.Int("ops", 100_000, "operations per benchmark phase")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	fmt.Println("=== Order Book Benchmark ===")
	fmt.Println()

	benchAddOrder(*ops)
	benchCancelOrder(*ops)
	benchExecuteOrder(*ops)
	benchBestPrices(*ops)
	benchSubmitThroughput(*ops)

	fmt.Println("=== Benchmark Complete ===")
}

func report(name string, ops int, elapsed time.Duration) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  Count: %d ops\n", ops)
	fmt.Printf("  Mean:  %.1f ns/op\n\n", float64(elapsed.Nanoseconds())/float64(ops))
}

// Alternate sides around a wide price band so nothing crosses and the
// book keeps accumulating depth.
func restingPrice(i int) orderbook.Price {
	return orderbook.Price(90_000 + i%20_000)
}

func restingSide(i int) orderbook.Side {
	if i%2 == 0 {
		return orderbook.Buy
	}
	return orderbook.Sell
}

func benchAddOrder(ops int) {
	book := orderbook.NewOrderBook()
	for i := 0; i < warmupOps; i++ {
		_ = book.AddOrder(orderbook.OrderID(i), restingSide(i), restingPrice(i), 100)
	}

	book = orderbook.NewOrderBook()
	start := time.Now()
	for i := 0; i < ops; i++ {
		_ = book.AddOrder(orderbook.OrderID(i), restingSide(i), restingPrice(i), 100)
	}
	report("Add Order", ops, time.Since(start))
}

func benchCancelOrder(ops int) {
	book := orderbook.NewOrderBook()
	for i := 0; i < ops; i++ {
		_ = book.AddOrder(orderbook.OrderID(i), restingSide(i), orderbook.Price(100_000+i%1_000), 100)
	}

	start := time.Now()
	for i := 0; i < ops; i++ {
		book.CancelOrder(orderbook.OrderID(i))
	}
	report("Cancel Order", ops, time.Since(start))
}

func benchExecuteOrder(ops int) {
	book := orderbook.NewOrderBook()
	for i := 0; i < ops; i++ {
		_ = book.AddOrder(orderbook.OrderID(i), restingSide(i), orderbook.Price(100_000+i%1_000), 1_000)
	}

	start := time.Now()
	for i := 0; i < ops; i++ {
		book.ExecuteOrder(orderbook.OrderID(i), 10)
	}
	report("Execute Order", ops, time.Since(start))
}

func benchBestPrices(ops int) {
	book := orderbook.NewOrderBook()
	for i := 0; i < 10_000; i++ {
		_ = book.AddOrder(orderbook.OrderID(i), restingSide(i), restingPrice(i), 100)
	}

	var bid, ask orderbook.Price
	start := time.Now()
	for i := 0; i < ops; i++ {
		bid = book.BestBid()
		ask = book.BestAsk()
	}
	elapsed := time.Since(start)
	_, _ = bid, ask
	report("Best Bid/Ask", ops, elapsed)
}

func benchSubmitThroughput(ops int) {
	eng := matching.NewEngine()

	start := time.Now()
	for i := 0; i < ops; i++ {
		// Tight band so a large share of submissions cross.
		price := orderbook.Price(100_000 + i%10)
		_, _ = eng.Submit(orderbook.OrderID(i), restingSide(i), price, 100)
	}
	elapsed := time.Since(start)

	report("Submit (matching)", ops, elapsed)
	fmt.Printf("  Trades emitted: %d\n\n", eng.LastSeq())
}
