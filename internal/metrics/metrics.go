// Package metrics records history activity as prometheus metrics. The CLI
// is short lived, so the registry is flushed to a node_exporter textfile
// instead of being scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/manav03panchal/trackedit/internal/undo"
)

const namespace = "trackedit"

// Recorder implements history.Observer on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	performed *prometheus.CounterVec
	undone    *prometheus.CounterVec
	redone    *prometheus.CounterVec
	failed    *prometheus.CounterVec
	depth     prometheus.Gauge
	units     prometheus.Gauge
}

// NewRecorder creates a recorder with every collector registered.
func NewRecorder() (*Recorder, error) {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		performed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "actions_performed_total",
			Help:      "Actions performed through the history",
		}, []string{"kind"}),

		undone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "actions_undone_total",
			Help:      "Actions undone",
		}, []string{"kind"}),

		redone: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "actions_redone_total",
			Help:      "Actions redone",
		}, []string{"kind"}),

		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "actions_failed_total",
			Help:      "Actions whose track could not be found",
		}, []string{"kind", "operation"}),

		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "depth",
			Help:      "Entries on the undo stack",
		}),

		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "size_units",
			Help:      "Summed size units of all history entries",
		}),
	}

	for _, c := range []prometheus.Collector{r.performed, r.undone, r.redone, r.failed, r.depth, r.units} {
		if err := r.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Performed(kind undo.Kind) {
	r.performed.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) Undone(kind undo.Kind) {
	r.undone.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) Redone(kind undo.Kind) {
	r.redone.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) Failed(kind undo.Kind, op string) {
	r.failed.WithLabelValues(string(kind), op).Inc()
}

func (r *Recorder) Resized(depth, units int) {
	r.depth.Set(float64(depth))
	r.units.Set(float64(units))
}

// WriteTextfile writes the current values in the text exposition format.
// An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
