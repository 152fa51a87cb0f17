package engine

import "matchbook/internal/book"

// Depth returns a snapshot of resting liquidity on both sides, up to
// levels price points per side, per SPEC_FULL.md §6.4. When
// includeOrders is true each level also carries its resolved resting
// orders in FIFO order, for callers that need per-order detail rather
// than just aggregate quantity.
func (ob *OrderBook) Depth(levels int, includeOrders bool) BookDepth {
	return BookDepth{
		Levels: levels,
		Asks:   ob.snapshotSide(ob.asks, levels, includeOrders),
		Bids:   ob.snapshotSide(ob.bids, levels, includeOrders),
	}
}

func (ob *OrderBook) snapshotSide(side *book.SideBook, levels int, includeOrders bool) []BookLevel {
	raw := side.Levels(levels)
	out := make([]BookLevel, 0, len(raw))

	for _, level := range raw {
		var qty Qty
		var orders []book.RestingOrder
		if includeOrders {
			orders = make([]book.RestingOrder, 0, len(level.Orders))
		}

		for _, id := range level.Orders {
			order, ok := ob.directory.Get(id)
			if !ok {
				continue
			}
			qty += order.RemainingQty
			if includeOrders {
				orders = append(orders, *order)
			}
		}

		out = append(out, BookLevel{Price: level.Price, Qty: qty, Orders: orders})
	}

	return out
}
