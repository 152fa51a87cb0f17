package engine

// finalize applies the maker-side mutation for every fill produced by
// matchLoop and recomputes the best-price cache, per SPEC_FULL.md
// §4.3.3. This is the only place matching state actually mutates —
// matchLoop itself is read-only, which is what makes FOK's atomic
// rejection (P5) just "don't call finalize".
func (ob *OrderBook) finalize(fills []FillMetadata) {
	for _, fill := range fills {
		makerSide := fill.TakerSide.Not()
		levels := ob.asks
		if makerSide == Bid {
			levels = ob.bids
		}

		level, ok := levels.Get(fill.Price)
		if !ok {
			continue
		}

		if fill.TotalFill {
			level.Remove(fill.MakerID)
			ob.directory.Delete(fill.MakerID)
			levels.DeleteIfEmpty(level)
		} else if maker, ok := ob.directory.Get(fill.MakerID); ok {
			maker.RemainingQty -= fill.Qty
		}
	}

	ob.recomputeBestPrices()
}

// recomputeBestPrices walks each side's tree to its new boundary,
// since the previous boundary level may have emptied during finalize.
func (ob *OrderBook) recomputeBestPrices() {
	if level, ok := ob.asks.Best(); ok {
		ob.minAsk = level.Price
	} else {
		ob.minAsk = maxPrice
	}
	if level, ok := ob.bids.Best(); ok {
		ob.maxBid = level.Price
	} else {
		ob.maxBid = 0
	}
}
