package metrics

import (
	"time"

	"matchbook/internal/engine"
)

var eventKindLabels = map[engine.EventKind]string{
	engine.Rejected:        "rejected",
	engine.Open:            "open",
	engine.Cancelled:       "cancelled",
	engine.PartiallyFilled: "partially_filled",
	engine.Filled:          "filled",
}

// RecordEvent increments the per-kind event counter. Fill and volume
// counters are updated separately by RecordFills.
func RecordEvent(kind engine.EventKind) {
	c := GetCollector()
	c.EventsTotal.WithLabelValues(eventKindLabels[kind]).Inc()
}

// RecordFills folds a completed event's fills into the fill-count and
// traded-volume counters.
func RecordFills(fills []engine.FillMetadata) {
	if len(fills) == 0 {
		return
	}
	c := GetCollector()
	var qty uint64
	for _, f := range fills {
		qty += f.Qty
	}
	c.FillsTotal.Add(float64(len(fills)))
	c.TradedVolume.Add(float64(qty))
}

// RecordBestPrices refreshes the best-bid/best-ask/spread gauges from
// the book's current cache.
func RecordBestPrices(ob *engine.OrderBook) {
	c := GetCollector()
	c.BestBid.Set(float64(ob.MaxBid()))
	c.BestAsk.Set(float64(ob.MinAsk()))
	c.SpreadTicks.Set(float64(ob.Spread()))
}

// ObserveDispatch records how long a single Execute call took.
func ObserveDispatch(start time.Time) {
	GetCollector().DispatchLatency.Observe(time.Since(start).Seconds())
}
