package engine

// recordStats folds an event's fills into the running volume/VWAP
// counters, per SPEC_FULL.md §4.5. It is a no-op unless trackStats
// was enabled on construction or via SetTrackStats, and a no-op for
// event kinds that never carry fills.
func (ob *OrderBook) recordStats(event Event) {
	if !ob.trackStats || len(event.Fills) == 0 {
		return
	}

	var qty Qty
	var notional float64
	var lastPrice Price
	var lastQty Qty

	for _, fill := range event.Fills {
		qty += fill.Qty
		notional += float64(fill.Qty) * float64(fill.Price)
		lastPrice = fill.Price
		lastQty = fill.Qty
	}

	ob.tradedVolume += qty
	ob.lastTrade = &Trade{
		TotalQty:  qty,
		AvgPrice:  notional / float64(qty),
		LastPrice: lastPrice,
		LastQty:   lastQty,
	}
}
