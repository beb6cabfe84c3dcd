package service

import (
	"context"
	"log/slog"
	"time"

	"matchcore/domain/matching"
	"matchcore/domain/orderbook"
	"matchcore/infra/feed"
	"matchcore/infra/journal"
)

// EngineService wires the matching engine to its caller-side
// collaborators. Journal and feed are optional: nil disables trade
// retention and quote publishing, leaving a bare deterministic core.
type EngineService struct {
	eng     *matching.Engine
	journal *journal.Journal
	feed    *feed.Publisher
	log     *slog.Logger
}

func New(
	eng *matching.Engine,
	j *journal.Journal,
	f *feed.Publisher,
	log *slog.Logger,
) *EngineService {
	if log == nil {
		log = slog.Default()
	}
	return &EngineService{
		eng:     eng,
		journal: j,
		feed:    f,
		log:     log,
	}
}

// Engine exposes the underlying matching engine.
func (s *EngineService) Engine() *matching.Engine { return s.eng }

// Submit runs an incoming order through the engine and retains any
// emitted trades in the journal. A journal failure does not undo the
// match: the book is already consistent, so the trade is logged and
// publication is lost rather than the fill.
func (s *EngineService) Submit(id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) ([]matching.Trade, error) {
	trades, err := s.eng.Submit(id, side, price, qty)
	if err != nil {
		return nil, err
	}

	if s.journal != nil {
		for i := range trades {
			if jerr := s.journal.Append(entryFrom(&trades[i])); jerr != nil {
				s.log.Error("trade retention failed", "seq", trades[i].Seq, "err", jerr)
			}
		}
	}
	return trades, nil
}

// Cancel removes a resting order, reporting whether it was present.
func (s *EngineService) Cancel(id orderbook.OrderID) bool {
	return s.eng.Cancel(id)
}

// Execute applies a direct fill to a resting order, bypassing matching.
func (s *EngineService) Execute(id orderbook.OrderID, qty orderbook.Quantity) bool {
	return s.eng.Execute(id, qty)
}

// TopOfBook snapshots the current best bid/ask and their sizes.
func (s *EngineService) TopOfBook() feed.Quote {
	book := s.eng.Book()
	q := feed.Quote{
		BestBid: uint64(book.BestBid()),
		BestAsk: uint64(book.BestAsk()),
		Seq:     s.eng.LastSeq(),
		Time:    time.Now().UnixNano(),
	}
	if lvl := book.BestBidLevel(); lvl != nil {
		q.BidQty = uint64(lvl.TotalQty())
	}
	if lvl := book.BestAskLevel(); lvl != nil {
		q.AskQty = uint64(lvl.TotalQty())
	}
	return q
}

// PublishQuote pushes the current top of book to the quote feed.
func (s *EngineService) PublishQuote(ctx context.Context) error {
	if s.feed == nil {
		return nil
	}
	return s.feed.Publish(ctx, s.TopOfBook())
}

// LevelView is one aggregated price level in a depth snapshot.
type LevelView struct {
	Price  orderbook.Price
	Qty    orderbook.Quantity
	Orders int
}

// Depth returns up to maxLevels aggregated levels per side, best to
// worst. maxLevels <= 0 means all levels.
func (s *EngineService) Depth(maxLevels int) (bids, asks []LevelView) {
	book := s.eng.Book()
	collect := func(out *[]LevelView) func(*orderbook.PriceLevel) bool {
		return func(lvl *orderbook.PriceLevel) bool {
			*out = append(*out, LevelView{
				Price:  lvl.Price(),
				Qty:    lvl.TotalQty(),
				Orders: lvl.Len(),
			})
			return maxLevels <= 0 || len(*out) < maxLevels
		}
	}
	book.BidsWalk(collect(&bids))
	book.AsksWalk(collect(&asks))
	return bids, asks
}

func entryFrom(t *matching.Trade) journal.Entry {
	return journal.Entry{
		Seq:           t.Seq,
		AggressorID:   uint64(t.AggressorID),
		PassiveID:     uint64(t.PassiveID),
		Price:         uint64(t.Price),
		Qty:           uint64(t.Qty),
		AggressorSide: uint8(t.AggressorSide),
	}
}
