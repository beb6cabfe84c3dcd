// Package matching implements continuous double-auction crossing with
// price-time priority on top of the order book. An incoming order walks
// the opposite side's levels best to worst, filling FIFO heads at the
// passive order's price, and rests any remainder. The engine never
// leaves the book crossed: after any engine-mediated operation,
// best bid < best ask (or a side is empty).
package matching
