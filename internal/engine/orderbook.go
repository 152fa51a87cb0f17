package engine

import "matchbook/internal/book"

// OrderBook is the process-wide matching core for a single symbol.
// It owns its directory and both side books exclusively; no locking
// is performed in-core (SPEC_FULL.md §5) — callers requiring
// multi-writer semantics must serialise externally.
type OrderBook struct {
	directory *book.Directory
	bids      *book.SideBook
	asks      *book.SideBook

	minAsk Price
	maxBid Price

	lastSeq OrderID

	trackStats   bool
	tradedVolume Qty
	lastTrade    *Trade
}

// NewOrderBook constructs an empty order book. arenaCapacity sizes the
// order directory; queueCapacity sizes each price level's resting
// order queue; both are hints, not hard caps. trackStats toggles
// volume/VWAP bookkeeping (SPEC_FULL.md §4.5), disabled by default.
func NewOrderBook(arenaCapacity, queueCapacity int, trackStats bool) *OrderBook {
	return &OrderBook{
		directory:  book.NewDirectory(arenaCapacity),
		bids:       book.NewBidBook(queueCapacity),
		asks:       book.NewAskBook(queueCapacity),
		minAsk:     maxPrice,
		maxBid:     0,
		trackStats: trackStats,
	}
}

// MinAsk returns the lowest ask price with non-empty resting
// quantity, or math.MaxUint64 if there is none.
func (ob *OrderBook) MinAsk() Price { return ob.minAsk }

// MaxBid returns the highest bid price with non-empty resting
// quantity, or 0 if there is none.
func (ob *OrderBook) MaxBid() Price { return ob.maxBid }

// Spread returns MinAsk() - MaxBid(). On an empty book this wraps to
// math.MaxUint64, a sentinel callers must treat as "undefined"
// (SPEC_FULL.md §3's Open Question decision #2).
func (ob *OrderBook) Spread() Price { return ob.minAsk - ob.maxBid }

// LastSequence returns the highest accepted non-cancel order id.
func (ob *OrderBook) LastSequence() OrderID { return ob.lastSeq }

// LastTrade returns the most recently recorded trade, if stats
// tracking has been enabled and at least one fill has occurred.
func (ob *OrderBook) LastTrade() (Trade, bool) {
	if ob.lastTrade == nil {
		return Trade{}, false
	}
	return *ob.lastTrade, true
}

// TradedVolume returns the cumulative filled quantity recorded while
// stats tracking was enabled.
func (ob *OrderBook) TradedVolume() Qty { return ob.tradedVolume }

// SetTrackStats toggles volume/VWAP bookkeeping.
func (ob *OrderBook) SetTrackStats(track bool) { ob.trackStats = track }
