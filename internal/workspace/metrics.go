package workspace

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results recorded by CBuildInformation.
const (
	lookupHit             = "hit"
	lookupMiss            = "miss"
	lookupNoProject       = "no_project"
	lookupNoConfiguration = "no_configuration"
	lookupError           = "error"
)

// Metrics are the Prometheus collectors of an Aggregator.
type Metrics struct {
	ScansTotal      prometheus.Counter
	ScanDuration    prometheus.Histogram
	Projects        prometheus.Gauge
	ProjectFailures prometheus.Counter
	BuildLookups    *prometheus.CounterVec
}

// NewMetrics registers the aggregator collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScansTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "asws_scans_total",
			Help: "Total number of workspace scans",
		}),
		ScanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "asws_scan_duration_seconds",
			Help:    "Time taken for a workspace scan",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		Projects: f.NewGauge(prometheus.GaugeOpts{
			Name: "asws_projects",
			Help: "Number of projects in the current snapshot",
		}),
		ProjectFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "asws_project_failures_total",
			Help: "Total number of project files that could not be loaded",
		}),
		BuildLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "asws_build_info_lookups_total",
			Help: "Total number of build information lookups",
		}, []string{"result"}),
	}
}
