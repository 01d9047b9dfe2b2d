// Package metrics provides small helpers for registering Prometheus
// counters and timers against the default registry, in the shape the
// rest of this module's per-package metrics.go files expect.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gateway_bridge"

// MustRegisterNewCounter registers a CounterVec with the given labels and
// returns a closure for incrementing it by label set. Panics on a
// duplicate registration, matching prometheus.MustRegister's behavior.
func MustRegisterNewCounter(name, help string, labels []string) func(prometheus.Labels) {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
	prometheus.MustRegister(c)

	return func(l prometheus.Labels) {
		c.With(l).Inc()
	}
}

// MustRegisterNewSingleLabelCounter registers a CounterVec with a single
// label (named labelName) and returns a closure for incrementing it by
// that label's value. Convenience wrapper around MustRegisterNewCounter
// for the common one-dimension "outcome"/"event" counter shape.
func MustRegisterNewSingleLabelCounter(name, help, labelName string) func(string) {
	inc := MustRegisterNewCounter(name, help, []string{labelName})
	return func(v string) {
		inc(prometheus.Labels{labelName: v})
	}
}

// MustRegisterNewTimerWithError registers a HistogramVec tracking call
// duration in seconds and returns a closure that times f and records
// whether it returned an error as an additional "error" dimension folded
// into a separate error counter.
func MustRegisterNewTimerWithError(name, help string, labels []string) func(prometheus.Labels, func() error) error {
	h := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name + "_duration_seconds",
			Help:      help,
		},
		labels,
	)
	prometheus.MustRegister(h)

	errLabels := append(append([]string{}, labels...), "error")
	ec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name + "_error_count",
			Help:      help + " (error count)",
		},
		errLabels,
	)
	prometheus.MustRegister(ec)

	return func(l prometheus.Labels, f func() error) error {
		start := time.Now()
		err := f()
		h.With(l).Observe(time.Since(start).Seconds())

		withErr := prometheus.Labels{}
		for k, v := range l {
			withErr[k] = v
		}
		if err != nil {
			withErr["error"] = "true"
		} else {
			withErr["error"] = "false"
		}
		ec.With(withErr).Inc()
		return err
	}
}
