package orderbook

import (
	"errors"
	"math"
)

// Price is an unsigned fixed-point price with four implied decimal
// digits: 10000 == 1.0000 of the quote currency.
type Price uint64

// Quantity is an unfilled order amount. It only ever decreases over an
// order's lifetime.
type Quantity uint64

// OrderID identifies an order for its whole lifetime in the book.
type OrderID uint64

// PriceNone is the reserved sentinel meaning "no best price". It is
// never accepted as an actual order price.
const PriceNone Price = math.MaxUint64

// PriceScale is the number of fixed-point units per quote currency unit.
const PriceScale = 10000

type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Sell {
		return "SELL"
	}
	return "BUY"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Caller errors. All of them reject the operation and leave the book
// untouched; none are fatal to the instance.
var (
	ErrDuplicateOrderID = errors.New("orderbook: order id already resident")
	ErrInvalidPrice     = errors.New("orderbook: price is the reserved no-price sentinel")
	ErrInvalidQuantity  = errors.New("orderbook: quantity must be positive")
)
