package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook() *OrderBook {
	return NewOrderBook(16, 4, true)
}

// Scenario 1: a partial market fill against a resting bid updates the
// directory's remaining quantity and the VWAP.
func TestScenarioPartialFillUpdatesRemainingAndVWAP(t *testing.T) {
	ob := newTestBook()

	open := ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 12, Price: 395})
	require.Equal(t, Open, open.Kind)

	filled := ob.Execute(Command{Kind: Market, ID: 2, UserID: 2, Side: Ask, Qty: 5})
	require.Equal(t, Filled, filled.Kind)
	require.Len(t, filled.Fills, 1)
	assert.Equal(t, FillMetadata{TakerID: 2, MakerID: 1, Qty: 5, Price: 395, TakerSide: Ask, TotalFill: false}, filled.Fills[0])

	assert.EqualValues(t, 395, ob.MaxBid())
	maker, ok := ob.directory.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 7, maker.RemainingQty)

	trade, ok := ob.LastTrade()
	require.True(t, ok)
	assert.Equal(t, 395.0, trade.AvgPrice)
}

// Scenario 2: an aggressor that can't clear the best ask level rests
// its residual, improving min_ask.
func TestScenarioPartiallyFilledRestsResidual(t *testing.T) {
	ob := newTestBook()

	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 12, Price: 395}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 2, UserID: 1, Side: Ask, Qty: 2, Price: 399}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 3, UserID: 1, Side: Bid, Qty: 2, Price: 398}).Kind)

	event := ob.Execute(Command{Kind: Limit, ID: 4, UserID: 1, Side: Ask, Qty: 5, Price: 397})
	require.Equal(t, PartiallyFilled, event.Kind)
	require.Len(t, event.Fills, 1)
	assert.Equal(t, FillMetadata{TakerID: 4, MakerID: 3, Qty: 2, Price: 398, TakerSide: Ask, TotalFill: true}, event.Fills[0])
	assert.EqualValues(t, 2, event.FilledQty)

	assert.EqualValues(t, 397, ob.MinAsk())
	assert.EqualValues(t, 395, ob.MaxBid())
	assert.EqualValues(t, 2, ob.Spread())

	rested, ok := ob.directory.Get(4)
	require.True(t, ok)
	assert.EqualValues(t, 3, rested.RemainingQty)
}

// Scenario 3: a market sell wide enough to drain both resting bid
// levels empties both and resets max_bid to 0.
func TestScenarioMarketDrainsBothBidLevels(t *testing.T) {
	ob := newTestBook()

	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 12, Price: 395}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 2, UserID: 1, Side: Ask, Qty: 2, Price: 399}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 3, UserID: 1, Side: Bid, Qty: 2, Price: 398}).Kind)

	event := ob.Execute(Command{Kind: Market, ID: 4, UserID: 2, Side: Ask, Qty: 15})
	require.Equal(t, PartiallyFilled, event.Kind)
	require.Equal(t, []FillMetadata{
		{TakerID: 4, MakerID: 3, Qty: 2, Price: 398, TakerSide: Ask, TotalFill: true},
		{TakerID: 4, MakerID: 1, Qty: 12, Price: 395, TakerSide: Ask, TotalFill: true},
	}, event.Fills)
	assert.EqualValues(t, 14, event.FilledQty)

	assert.EqualValues(t, 0, ob.MaxBid())
	assert.EqualValues(t, 399, ob.MinAsk())
}

// Scenario 4: a market order against an empty book is rejected for
// lack of liquidity and leaves no trace.
func TestScenarioMarketOnEmptyBookRejected(t *testing.T) {
	ob := newTestBook()

	event := ob.Execute(Command{Kind: Market, ID: 1, UserID: 1, Side: Bid, Qty: 5})
	assert.Equal(t, Event{Kind: Rejected, ID: 1, Reason: ReasonLiquidityNotAvailable}, event)
	assert.Zero(t, ob.directory.Len())
}

// Scenario 5: cancelling an unknown id is idempotent and changes
// nothing.
func TestScenarioCancelUnknownIsCancelledNoop(t *testing.T) {
	ob := newTestBook()

	event := ob.Execute(Command{Kind: Cancel, ID: 99})
	assert.Equal(t, Event{Kind: Cancelled, ID: 99}, event)
	assert.Zero(t, ob.directory.Len())
	assert.EqualValues(t, maxPrice, ob.MinAsk())
	assert.EqualValues(t, 0, ob.MaxBid())
}

// Scenario 6: two resting bids at an identical price fill in strict
// FIFO arrival order.
func TestScenarioFIFOWithinPrice(t *testing.T) {
	ob := newTestBook()

	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 10, Price: 100}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 2, UserID: 1, Side: Bid, Qty: 20, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: Market, ID: 3, UserID: 2, Side: Ask, Qty: 25})
	require.Equal(t, Filled, event.Kind)
	assert.Equal(t, []FillMetadata{
		{TakerID: 3, MakerID: 1, Qty: 10, Price: 100, TakerSide: Ask, TotalFill: true},
		{TakerID: 3, MakerID: 2, Qty: 15, Price: 100, TakerSide: Ask, TotalFill: false},
	}, event.Fills)
	assert.EqualValues(t, 25, event.FilledQty)
}

// Scenario 7: out-of-sequence admission is rejected without touching
// the book.
func TestScenarioOutOfSequenceRejected(t *testing.T) {
	ob := newTestBook()

	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 5, UserID: 1, Side: Bid, Qty: 1, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: Limit, ID: 3, UserID: 1, Side: Bid, Qty: 1, Price: 100})
	assert.Equal(t, Event{Kind: Rejected, ID: 3, Reason: ReasonInvalidOrderNumber}, event)
	assert.EqualValues(t, 5, ob.LastSequence())
	assert.Equal(t, 1, ob.directory.Len())
}

// P2: total filled quantity never exceeds the command's requested
// quantity, and full consumption is always reported as Filled.
func TestPropertyFillsNeverExceedRequestedQty(t *testing.T) {
	ob := newTestBook()
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 10, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: Market, ID: 2, UserID: 2, Side: Ask, Qty: 4})
	require.Equal(t, Filled, event.Kind)
	var total Qty
	for _, f := range event.Fills {
		total += f.Qty
	}
	assert.LessOrEqual(t, total, Qty(4))
	assert.Equal(t, total, event.FilledQty)
}

// P3: a Limit immediately cancelled on an otherwise empty book
// restores the book to its prior defaulted state.
func TestPropertyLimitThenCancelRoundTrips(t *testing.T) {
	ob := newTestBook()

	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 10, Price: 100}).Kind)
	cancelled := ob.Execute(Command{Kind: Cancel, ID: 1})
	assert.Equal(t, Event{Kind: Cancelled, ID: 1}, cancelled)

	assert.Zero(t, ob.directory.Len())
	assert.EqualValues(t, 0, ob.MaxBid())
	assert.EqualValues(t, maxPrice, ob.MinAsk())

	depth := ob.Depth(10, true)
	assert.Empty(t, depth.Bids)
	assert.Empty(t, depth.Asks)
}

// P4: of two equal-priced makers a < b, consuming exactly one unit
// beyond a's quantity fully fills a and partially fills b, never the
// reverse.
func TestPropertyPriceTimePriorityNeverReversed(t *testing.T) {
	ob := newTestBook()
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 5, Price: 100}).Kind)
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 2, UserID: 1, Side: Bid, Qty: 5, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: Market, ID: 3, UserID: 2, Side: Ask, Qty: 6})
	require.Len(t, event.Fills, 2)
	assert.Equal(t, OrderID(1), event.Fills[0].MakerID)
	assert.True(t, event.Fills[0].TotalFill)
	assert.Equal(t, OrderID(2), event.Fills[1].MakerID)
	assert.False(t, event.Fills[1].TotalFill)
}

// P5: a rejected FOK leaves the book byte-identical to its
// pre-command state.
func TestPropertyFOKRejectionIsAtomic(t *testing.T) {
	ob := newTestBook()
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 5, Price: 100}).Kind)

	before := ob.directory.Len()
	beforeMaxBid, beforeMinAsk := ob.MaxBid(), ob.MinAsk()

	event := ob.Execute(Command{Kind: FOK, ID: 2, UserID: 2, Side: Ask, Qty: 10, Price: 100})
	assert.Equal(t, Rejected, event.Kind)
	assert.Equal(t, ReasonLiquidityNotAvailable, event.Reason)

	assert.Equal(t, before, ob.directory.Len())
	assert.Equal(t, beforeMaxBid, ob.MaxBid())
	assert.Equal(t, beforeMinAsk, ob.MinAsk())

	maker, ok := ob.directory.Get(1)
	require.True(t, ok)
	assert.EqualValues(t, 5, maker.RemainingQty)
}

// P5, the feasible complement: an FOK that CAN be fully filled
// commits exactly like Market/Limit.
func TestPropertyFOKFeasibleFillsAtomically(t *testing.T) {
	ob := newTestBook()
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 10, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: FOK, ID: 2, UserID: 2, Side: Ask, Qty: 10, Price: 100})
	assert.Equal(t, Filled, event.Kind)
	assert.EqualValues(t, 10, event.FilledQty)
	_, ok := ob.directory.Get(1)
	assert.False(t, ok)
}

// P6: an IOC never rests, regardless of whether it fully, partially,
// or never fills.
func TestPropertyIOCNeverRests(t *testing.T) {
	ob := newTestBook()
	require.Equal(t, Open, ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Bid, Qty: 3, Price: 100}).Kind)

	event := ob.Execute(Command{Kind: IOC, ID: 2, UserID: 2, Side: Ask, Qty: 10, Price: 100})
	assert.Equal(t, PartiallyFilled, event.Kind)
	_, ok := ob.directory.Get(2)
	assert.False(t, ok, "IOC must never leave a resting entry in the directory")

	rejected := ob.Execute(Command{Kind: IOC, ID: 3, UserID: 2, Side: Ask, Qty: 1, Price: 100})
	assert.Equal(t, Rejected, rejected.Kind)
	_, ok = ob.directory.Get(3)
	assert.False(t, ok)
}

// Example demonstrates a minimal session against an empty book, carried
// over from the library's original usage doc: a market order with id 0
// is rejected (0 does not exceed the initial last sequence of 0), a
// resting limit order opens, and a larger market order against it
// partially fills.
func Example() {
	ob := NewOrderBook(64, 8, true)

	rejected := ob.Execute(Command{Kind: Market, ID: 0, UserID: 1, Side: Bid, Qty: 1})
	fmt.Println(rejected.Kind == Rejected)

	opened := ob.Execute(Command{Kind: Limit, ID: 1, UserID: 1, Side: Ask, Qty: 3, Price: 120})
	fmt.Println(opened.Kind == Open)

	filled := ob.Execute(Command{Kind: Market, ID: 2, UserID: 1, Side: Bid, Qty: 4})
	fmt.Println(filled.Kind == PartiallyFilled, filled.FilledQty, filled.Fills[0].TotalFill)

	// Output:
	// true
	// true
	// true 3 true
}
