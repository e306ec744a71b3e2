package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	ResultOK         = "ok"
	ResultFetchError = "fetch_error"
	ResultParseError = "parse_error"
)

// Metrics owns its registry so tests and the batch job never touch the
// global default registry.
type Metrics struct {
	Registry      *prometheus.Registry
	Sitemaps      *prometheus.CounterVec
	Pages         *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	Links         prometheus.Gauge
	RecordsSaved  prometheus.Gauge
	LastRun       prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Sitemaps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "akandict_sitemaps_total",
			Help: "Sitemaps processed, by result.",
		}, []string{"result"}),
		Pages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "akandict_pages_total",
			Help: "Word pages processed, by result.",
		}, []string{"result"}),
		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "akandict_fetch_duration_seconds",
			Help:    "Duration of successful page fetches.",
			Buckets: prometheus.DefBuckets,
		}),
		Links: f.NewGauge(prometheus.GaugeOpts{
			Name: "akandict_links",
			Help: "Unique word links discovered in the last run.",
		}),
		RecordsSaved: f.NewGauge(prometheus.GaugeOpts{
			Name: "akandict_records_saved",
			Help: "Records written by the last run.",
		}),
		LastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "akandict_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
