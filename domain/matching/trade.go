package matching

import "matchcore/domain/orderbook"

// Trade records one fill between an incoming aggressor and a resting
// passive order. Execution happens at the passive order's price, so any
// price improvement accrues to the aggressor. Seq is strictly increasing
// in emission order within one engine.
type Trade struct {
	AggressorID   orderbook.OrderID
	PassiveID     orderbook.OrderID
	Price         orderbook.Price
	Qty           orderbook.Quantity
	AggressorSide orderbook.Side
	Seq           uint64
}
