// Package journal retains emitted trades in a pebble store keyed by
// trade sequence, with a publish-state machine so the broadcaster can
// drain them to Kafka at-least-once. The matching core only emits
// trades; retaining them is this caller-side concern.
package journal

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// State tracks how far a journaled trade has progressed toward
// publication.
type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	default:
		return "UNKNOWN"
	}
}

// Entry is one retained trade plus its publish state.
type Entry struct {
	Seq           uint64
	AggressorID   uint64
	PassiveID     uint64
	Price         uint64
	Qty           uint64
	AggressorSide uint8
	State         State
	Appended      int64 // unix nanos
}

const entrySize = 1 + 1 + 8 + 8 + 8 + 8 + 8

// layout: [state:1][side:1][aggressor:8][passive:8][price:8][qty:8][appended:8]
func encodeEntry(e *Entry) []byte {
	buf := make([]byte, entrySize)
	buf[0] = byte(e.State)
	buf[1] = e.AggressorSide
	binary.BigEndian.PutUint64(buf[2:10], e.AggressorID)
	binary.BigEndian.PutUint64(buf[10:18], e.PassiveID)
	binary.BigEndian.PutUint64(buf[18:26], e.Price)
	binary.BigEndian.PutUint64(buf[26:34], e.Qty)
	binary.BigEndian.PutUint64(buf[34:42], uint64(e.Appended))
	return buf
}

func decodeEntry(seq uint64, b []byte) (Entry, error) {
	if len(b) != entrySize {
		return Entry{}, errors.New("journal: invalid entry length")
	}
	return Entry{
		Seq:           seq,
		State:         State(b[0]),
		AggressorSide: b[1],
		AggressorID:   binary.BigEndian.Uint64(b[2:10]),
		PassiveID:     binary.BigEndian.Uint64(b[10:18]),
		Price:         binary.BigEndian.Uint64(b[18:26]),
		Qty:           binary.BigEndian.Uint64(b[26:34]),
		Appended:      int64(binary.BigEndian.Uint64(b[34:42])),
	}, nil
}

// Journal is the durable trade outbox.
type Journal struct {
	db *pebble.DB
}

func Open(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		DisableWAL: false,
	})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", dir, err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Append retains a newly emitted trade in state NEW. e.State and
// e.Appended are set by the journal.
func (j *Journal) Append(e Entry) error {
	e.State = StateNew
	e.Appended = time.Now().UnixNano()
	return j.db.Set(keyFor(e.Seq), encodeEntry(&e), pebble.Sync)
}

// Get returns the entry for a trade sequence.
func (j *Journal) Get(seq uint64) (Entry, error) {
	val, closer, err := j.db.Get(keyFor(seq))
	if err != nil {
		return Entry{}, err
	}
	defer closer.Close()
	return decodeEntry(seq, val)
}

// MarkSent records that a publish attempt started for seq.
func (j *Journal) MarkSent(seq uint64) error {
	return j.setState(seq, StateSent)
}

// MarkAcked records that the broker acknowledged seq.
func (j *Journal) MarkAcked(seq uint64) error {
	return j.setState(seq, StateAcked)
}

func (j *Journal) setState(seq uint64, s State) error {
	e, err := j.Get(seq)
	if err != nil {
		return err
	}
	e.State = s
	return j.db.Set(keyFor(seq), encodeEntry(&e), pebble.Sync)
}

// ScanPending visits every entry not yet acked, in sequence order.
// SENT entries are included: a send without an ack must be retried,
// which makes the feed at-least-once.
func (j *Journal) ScanPending(fn func(Entry) error) error {
	return j.scan(func(e Entry) error {
		if e.State == StateAcked {
			return nil
		}
		return fn(e)
	})
}

// TruncateAcked deletes acked entries with sequence <= upTo.
func (j *Journal) TruncateAcked(upTo uint64) error {
	return j.scan(func(e Entry) error {
		if e.State != StateAcked || e.Seq > upTo {
			return nil
		}
		return j.db.Delete(keyFor(e.Seq), pebble.Sync)
	})
}

func (j *Journal) scan(fn func(Entry) error) error {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("trade/"),
		UpperBound: []byte("trade/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		e, err := decodeEntry(seq, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return iter.Error()
}

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("trade/%020d", seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte("trade/"))), "%d", &seq)
	return seq, err
}
