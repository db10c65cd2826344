package modkit

import (
	"parachute/internal/core/rulepack"
	"parachute/internal/platform/config"
	"parachute/internal/platform/logger"
	"parachute/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Metrics *metrics.Registry
	Rules   *rulepack.Pack
}

// Logger returns a child logger tagged with component. Falls back to the
// root logger when Log is nil
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}

// MetricsOrNew returns Metrics, or a private registry when none was wired so
// modules can record unconditionally
func (d Deps) MetricsOrNew() *metrics.Registry {
	if d.Metrics != nil {
		return d.Metrics
	}
	return metrics.New(metrics.Options{})
}
