package engine

import "matchbook/internal/book"

// matchLoop is the shared match loop of SPEC_FULL.md §4.3.2: it walks
// the opposing side's price levels in priority order, simulating
// fills against resting orders without mutating any state. It is
// shared by Market, Limit, IOC and FOK — the two-phase
// simulate-then-finalize split (finalize.go applies the mutation) is
// what lets FOK's feasibility check simply discard the simulated
// fills and skip finalize when infeasible (P5).
//
// limitPrice is nil for Market orders (no cap). For Bid aggressors a
// level is favourable while its price is <= *limitPrice; for Ask
// aggressors, while its price is >= *limitPrice.
func (ob *OrderBook) matchLoop(takerID OrderID, side Side, qty Qty, limitPrice *Price) ([]FillMetadata, Qty) {
	opposing := ob.asks
	if side == Ask {
		opposing = ob.bids
	}

	var fills []FillMetadata
	remaining := qty

	opposing.Scan(func(level *book.PriceLevel) bool {
		if limitPrice != nil {
			if side == Bid && *limitPrice < level.Price {
				return false
			}
			if side == Ask && *limitPrice > level.Price {
				return false
			}
		}
		if remaining == 0 {
			return false
		}

		for _, makerID := range level.Orders {
			if remaining == 0 {
				break
			}
			maker, ok := ob.directory.Get(makerID)
			if !ok {
				continue
			}
			traded := min(remaining, maker.RemainingQty)
			fills = append(fills, FillMetadata{
				TakerID:   takerID,
				MakerID:   makerID,
				Qty:       traded,
				Price:     level.Price,
				TakerSide: side,
				TotalFill: traded == maker.RemainingQty,
			})
			remaining -= traded
		}
		return remaining > 0
	})

	return fills, remaining
}
