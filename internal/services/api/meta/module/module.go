// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"parachute/internal/core/version"
	modkit "parachute/internal/modkit"
	"parachute/internal/modkit/httpkit"

	metahttp "parachute/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{
		Base: modkit.NewBase([]modkit.Option{
			modkit.WithName("meta"),
			modkit.WithPrefix("/meta"),
		}, opts...),
		startedAt: time.Now(),
	}

	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   m.startedAt,
	}
	if deps.Rules != nil {
		d.RulesVersion = deps.Rules.Version
		d.RuleCount = len(deps.Rules.Rules)
	}
	m.Routes = func(r httpkit.Router) { metahttp.Register(r, d) }
	return m
}
