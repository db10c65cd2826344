// Package module wires the rule catalogue into the API using modkit
package module

import (
	"parachute/internal/core/matcher"
	modkit "parachute/internal/modkit"
	"parachute/internal/modkit/httpkit"
	ruleshttp "parachute/internal/services/api/rules/http"
	rulessvc "parachute/internal/services/api/rules/service"
)

// Ports are the collaborators the rules module accepts from other modules
type Ports struct {
	// Matcher is shared with the inference engine when set
	Matcher *matcher.Matcher
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc rulessvc.Service
}

// New constructs the rules module. deps.Rules is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase([]modkit.Option{
		modkit.WithName("rules"),
		modkit.WithPrefix("/rules"),
	}, opts...)}

	var shared *matcher.Matcher
	if p, ok := m.Built.Ports.(Ports); ok {
		shared = p.Matcher
	}
	m.svc = rulessvc.New(deps.Rules, shared)

	m.Routes = func(r httpkit.Router) {
		ruleshttp.Register(r, m.svc)
	}
	return m
}
