package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resuexpress"

// Result label values.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultStale   = "stale"
	ResultDefault = "default"
)

// Metrics holds the wizard's Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Saves              *prometheus.CounterVec
	Loads              *prometheus.CounterVec
	Renders            *prometheus.CounterVec
	Exports            *prometheus.CounterVec
	AutosaveRearms     prometheus.Counter
	AutosaveFlushes    prometheus.Counter
	ValidationRejected prometheus.Counter
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "saves_total", Help: "Document writes by result."},
			[]string{"result"},
		),
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "loads_total", Help: "Document loads by result."},
			[]string{"result"},
		),
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "renders_total", Help: "Preview renders by template and result."},
			[]string{"template", "result"},
		),
		Exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "exports_total", Help: "Exports by format."},
			[]string{"format"},
		),
		AutosaveRearms: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "autosave_rearms_total", Help: "Debounce timer rearms."},
		),
		AutosaveFlushes: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "autosave_flushes_total", Help: "Debounced writes that fired."},
		),
		ValidationRejected: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "validation_rejections_total", Help: "Step transitions blocked by validation."},
		),
	}
}

// RegisterCollectors registers every collector with reg.
func (m *Metrics) RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(m.Saves)
	reg.MustRegister(m.Loads)
	reg.MustRegister(m.Renders)
	reg.MustRegister(m.Exports)
	reg.MustRegister(m.AutosaveRearms)
	reg.MustRegister(m.AutosaveFlushes)
	reg.MustRegister(m.ValidationRejected)
}

func (m *Metrics) Saved(result string) {
	if m != nil {
		m.Saves.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Loaded(result string) {
	if m != nil {
		m.Loads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Rendered(template string, ok bool) {
	if m == nil {
		return
	}
	result := ResultOK
	if !ok {
		result = ResultError
	}
	m.Renders.WithLabelValues(template, result).Inc()
}

func (m *Metrics) Exported(format string) {
	if m != nil {
		m.Exports.WithLabelValues(format).Inc()
	}
}

func (m *Metrics) Rejected() {
	if m != nil {
		m.ValidationRejected.Inc()
	}
}

// Rearmed and Fired let Metrics observe the autosave coordinator.
func (m *Metrics) Rearmed() {
	if m != nil {
		m.AutosaveRearms.Inc()
	}
}

func (m *Metrics) Fired() {
	if m != nil {
		m.AutosaveFlushes.Inc()
	}
}
