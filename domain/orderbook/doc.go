// Package orderbook implements the in-memory limit order book for a
// single instrument. It keeps the authoritative id -> order index, two
// red-black trees of price levels (bids and asks), FIFO order queues
// within each level, and cached best bid/ask prices so top-of-book
// queries are O(1).
//
// The book is single-writer and deterministic: every operation runs to
// completion on the caller's goroutine and there is no internal locking.
// Callers must serialize mutations to a given book.
package orderbook
