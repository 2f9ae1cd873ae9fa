package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	runOutcomes   *prom.CounterVec
	nodeChanges   *prom.CounterVec
	pages         prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual sync stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "run_outcomes_total",
			Help:      "Sync runs by final status",
		}, []string{"outcome"}),
		nodeChanges: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "node_changes_total",
			Help:      "Navigation node changes by kind",
		}, []string{"change"}),
		pages: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "pages",
			Help:      "Pages loaded by the last run",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.runOutcomes, pr.nodeChanges, pr.pages)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddNodeChanges(change ChangeLabel, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.nodeChanges.WithLabelValues(string(change)).Add(float64(n))
}

func (p *PrometheusRecorder) SetPageCount(n int) {
	if p == nil {
		return
	}
	p.pages.Set(float64(n))
}
