// Package metrics exports synthesis statistics through prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/qrm-go/qrm/synth"
)

const (
	namespace = "qrm"
	subsystem = "synth"
)

// Collector records node events and finished encoders. It implements synth.Tracer and
// is safe for concurrent use.
type Collector struct {
	reg *prometheus.Registry

	nodesTotal     *prometheus.CounterVec
	layerCNOTs     *prometheus.CounterVec
	layerHadamards *prometheus.CounterVec
	circuitCNOTs   *prometheus.GaugeVec
	circuitDepth   *prometheus.GaugeVec
	mismatches     *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

var _ synth.Tracer = (*Collector)(nil)

// New registers the collector's metrics on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		reg: reg,
		nodesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_total",
				Help:      "Recursion nodes visited",
			},
			[]string{"variant", "kind"},
		),
		layerCNOTs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "layer_cnots_total",
				Help:      "CNOTs emitted by recursion layers",
			},
			[]string{"variant", "kind"},
		),
		layerHadamards: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "layer_hadamards_total",
				Help:      "Hadamards emitted by recursion layers",
			},
			[]string{"variant", "kind"},
		),
		circuitCNOTs: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "circuit_cnots",
				Help:      "CNOT count of the last encoder per case",
			},
			[]string{"variant", "r", "m"},
		),
		circuitDepth: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "circuit_depth",
				Help:      "Depth of the last encoder per case",
			},
			[]string{"variant", "r", "m"},
		),
		mismatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "oracle_mismatch_total",
				Help:      "Encoders whose CNOT count differs from the analytic count",
			},
			[]string{"variant"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Time to synthesize one encoder",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"variant"},
		),
	}
}

// Node implements synth.Tracer.
func (c *Collector) Node(ev synth.NodeEvent) {
	v, k := ev.Variant.String(), string(ev.Kind)
	c.nodesTotal.WithLabelValues(v, k).Inc()
	c.layerCNOTs.WithLabelValues(v, k).Add(float64(ev.CNOTs))
	c.layerHadamards.WithLabelValues(v, k).Add(float64(ev.Hadamards))
}

// ObserveResult records the size of a finished encoder and how long it took.
func (c *Collector) ObserveResult(cfg *synth.Config, res *synth.Result, took time.Duration) {
	v := cfg.Variant.String()
	r, m := strconv.Itoa(cfg.R), strconv.Itoa(cfg.M)
	c.circuitCNOTs.WithLabelValues(v, r, m).Set(float64(res.Circuit.CNOTCount()))
	c.circuitDepth.WithLabelValues(v, r, m).Set(float64(res.Circuit.Depth()))
	c.duration.WithLabelValues(v).Observe(took.Seconds())
}

// Mismatch counts an encoder whose size disagrees with the analytic count.
func (c *Collector) Mismatch(v synth.Variant) {
	c.mismatches.WithLabelValues(v.String()).Inc()
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// WriteTextfile dumps every metric in the node-exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, c.reg), "write metrics %s", path)
}
