package tracelog

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes collector counters to Prometheus. Values are read from the
// collector at scrape time, so the capture path does no extra work.
type Metrics struct {
	Delivered prometheus.CounterFunc
	Dropped   prometheus.CounterFunc
	Pending   prometheus.GaugeFunc
	OpenSpans prometheus.GaugeFunc
}

// NewMetrics builds the collectors for c and registers them with reg when non-nil.
func NewMetrics(c *Collector, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Delivered: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "tracepanel_records_delivered_total",
			Help: "Records accepted by the delivery queue.",
		}, func() float64 { return float64(c.Delivered()) }),
		Dropped: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "tracepanel_records_dropped_total",
			Help: "Records evicted from the delivery queue before display.",
		}, func() float64 { return float64(c.Dropped()) }),
		Pending: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "tracepanel_records_pending",
			Help: "Records waiting to be drained by the log panel.",
		}, func() float64 { return float64(c.Pending()) }),
		OpenSpans: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "tracepanel_open_spans",
			Help: "Spans whose fields are currently tracked.",
		}, func() float64 { return float64(c.OpenSpans()) }),
	}
	if reg == nil {
		return m, nil
	}
	for _, col := range []prometheus.Collector{m.Delivered, m.Dropped, m.Pending, m.OpenSpans} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return m, nil
}
