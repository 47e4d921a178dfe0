package build

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records build outcomes in a private Prometheus registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	jobsTotal    *prometheus.CounterVec
	jobDuration  prometheus.Histogram
	artifactSize *prometheus.GaugeVec
	lastSuccess  prometheus.Gauge
	lastRun      prometheus.Gauge
}

// NewMetrics creates and registers all build metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		jobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "packrun_jobs_total",
			Help: "Build jobs by outcome.",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "packrun_job_duration_seconds",
			Help:    "Wall time of one build job.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}),
		artifactSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "packrun_artifact_size_bytes",
			Help: "Size of the most recent artifact per output.",
		}, []string{"output"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "packrun_last_run_success",
			Help: "1 if the last run built every artifact, 0 otherwise.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "packrun_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
	m.registry.MustRegister(m.jobsTotal, m.jobDuration, m.artifactSize, m.lastSuccess, m.lastRun)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveJob records one job outcome.
func (m *Metrics) ObserveJob(oc JobOutcome) {
	if m == nil {
		return
	}
	m.jobsTotal.WithLabelValues(outcomeLabel(oc.Kind)).Inc()
	if oc.Kind != NotFound && oc.Kind != Canceled {
		m.jobDuration.Observe(oc.Duration.Seconds())
	}
	if oc.OK() {
		m.artifactSize.WithLabelValues(oc.Job.Output).Set(float64(oc.Size))
	}
}

// ObserveRun records the aggregate outcome of a run finished at now.
func (m *Metrics) ObserveRun(out RunOutcome, now time.Time) {
	if m == nil {
		return
	}
	if out.Kind == AllSucceeded {
		m.lastSuccess.Set(1)
	} else {
		m.lastSuccess.Set(0)
	}
	m.lastRun.Set(float64(now.Unix()))
}

// WriteTextfile writes the metrics in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func outcomeLabel(k OutcomeKind) string {
	switch k {
	case Success:
		return "success"
	case NotFound:
		return "not_found"
	case ToolFailure:
		return "tool_failure"
	case ArtifactMissing:
		return "artifact_missing"
	case SpawnError:
		return "spawn_error"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}
