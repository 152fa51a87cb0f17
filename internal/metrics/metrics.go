// Package metrics wires matchbookd's service-level observability,
// adapted from VictorVVedtion-perp-dex/metrics/prometheus.go's
// Collector singleton but scaled down to the handful of signals a
// single-symbol matching engine exposes. Recorded only at the
// server/dispatch boundary (netsrv) — the matching core in
// internal/engine performs no I/O and knows nothing of Prometheus.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds every metric matchbookd exposes.
type Collector struct {
	EventsTotal    *prometheus.CounterVec
	FillsTotal     prometheus.Counter
	TradedVolume   prometheus.Counter
	BestBid        prometheus.Gauge
	BestAsk        prometheus.Gauge
	SpreadTicks    prometheus.Gauge
	DispatchLatency prometheus.Histogram
}

// GetCollector returns the process-wide metrics singleton, building
// and registering it on first use.
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
		collector.registerAll()
	})
	return collector
}

func newCollector() *Collector {
	c := &Collector{}

	c.EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "matchbook",
			Subsystem: "engine",
			Name:      "events_total",
			Help:      "Total number of events emitted by the matching engine, by kind.",
		},
		[]string{"kind"},
	)

	c.FillsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchbook",
		Subsystem: "engine",
		Name:      "fills_total",
		Help:      "Total number of individual maker fills produced.",
	})

	c.TradedVolume = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "matchbook",
		Subsystem: "engine",
		Name:      "traded_volume_total",
		Help:      "Cumulative traded quantity across all fills.",
	})

	c.BestBid = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchbook",
		Subsystem: "book",
		Name:      "best_bid",
		Help:      "Current highest resting bid price.",
	})

	c.BestAsk = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchbook",
		Subsystem: "book",
		Name:      "best_ask",
		Help:      "Current lowest resting ask price.",
	})

	c.SpreadTicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "matchbook",
		Subsystem: "book",
		Name:      "spread_ticks",
		Help:      "Current best-ask minus best-bid spread.",
	})

	c.DispatchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "matchbook",
		Subsystem: "engine",
		Name:      "dispatch_latency_seconds",
		Help:      "Time spent executing a single command against the book.",
		Buckets:   prometheus.DefBuckets,
	})

	return c
}

func (c *Collector) registerAll() {
	prometheus.MustRegister(c.EventsTotal)
	prometheus.MustRegister(c.FillsTotal)
	prometheus.MustRegister(c.TradedVolume)
	prometheus.MustRegister(c.BestBid)
	prometheus.MustRegister(c.BestAsk)
	prometheus.MustRegister(c.SpreadTicks)
	prometheus.MustRegister(c.DispatchLatency)
}

// Handler returns the HTTP handler serving the Prometheus exposition
// format, for mounting on the daemon's metrics listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
