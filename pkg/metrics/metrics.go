// Package metrics records the outcome of a cleaning run as Prometheus metrics
// and writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/glorpus-work/nugetclean/pkg/cache"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
	"github.com/glorpus-work/nugetclean/pkg/retention"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nugetclean"

var (
	reasons = []retention.Reason{
		retention.ReasonRetained,
		retention.ReasonPruned,
		retention.ReasonEmpty,
		retention.ReasonAgedOut,
		retention.ReasonEmptyPackage,
	}
	outcomes = []deleter.Outcome{deleter.Unauthorized, deleter.Failed}
)

// Recorder holds the metrics of one run in a private registry.
type Recorder struct {
	registry *prometheus.Registry

	FreedBytes      prometheus.Gauge
	PackagesScanned prometheus.Gauge
	Directories     *prometheus.GaugeVec
	DeleteFailures  *prometheus.GaugeVec
	DryRun          prometheus.Gauge
	LastRun         prometheus.Gauge
}

// New creates a Recorder with every series registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		FreedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "freed_bytes",
			Help:      "Bytes freed, or that would be freed in a dry run, by the last run",
		}),
		PackagesScanned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "packages_scanned",
			Help:      "Package directories evaluated by the last run",
		}),
		Directories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "directories_total",
			Help:      "Directories per retention decision in the last run",
		}, []string{"reason"}),
		DeleteFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "delete_failures_total",
			Help:      "Directories that could not be removed in the last run",
		}, []string{"outcome"}),
		DryRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dry_run",
			Help:      "1 if the last run did not delete anything",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.FreedBytes,
		r.PackagesScanned,
		r.Directories,
		r.DeleteFailures,
		r.DryRun,
		r.LastRun,
	)

	for _, reason := range reasons {
		r.Directories.WithLabelValues(string(reason))
	}
	for _, outcome := range outcomes {
		r.DeleteFailures.WithLabelValues(string(outcome))
	}
	return r
}

// Observe records a finished walk.
func (r *Recorder) Observe(result *cache.Result, dryRun bool, finished time.Time) {
	r.FreedBytes.Set(float64(result.Freed))
	r.PackagesScanned.Set(float64(len(result.Packages)))
	for reason, n := range result.Counts.Decisions {
		r.Directories.WithLabelValues(string(reason)).Set(float64(n))
	}
	for outcome, n := range result.Counts.Failures {
		r.DeleteFailures.WithLabelValues(string(outcome)).Set(float64(n))
	}
	if dryRun {
		r.DryRun.Set(1)
	} else {
		r.DryRun.Set(0)
	}
	r.LastRun.Set(float64(finished.Unix()))
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes the metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrap(errors.ErrMetricsWrite, err.Error())
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrap(errors.ErrMetricsWrite, err.Error())
	}
	return nil
}
