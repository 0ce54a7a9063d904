package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fileResults *prom.CounterVec
	runDuration *prom.HistogramVec
}

// NewPrometheusRecorder constructs and registers the appshell metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "appshell",
			Name:      "file_results_total",
			Help:      "Files handled per command by outcome",
		}, []string{"command", "result"}),
		runDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "appshell",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a command run",
			Buckets:   prom.DefBuckets,
		}, []string{"command"}),
	}
	reg.MustRegister(pr.fileResults, pr.runDuration)
	return pr
}

func (p *PrometheusRecorder) IncFileResult(command string, result ResultLabel) {
	if p == nil || p.fileResults == nil {
		return
	}
	p.fileResults.WithLabelValues(command, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

// WriteTextfile writes every metric gathered from g to path in the text exposition format.
func WriteTextfile(path string, g prom.Gatherer) error {
	return prom.WriteToTextfile(path, g)
}
