// Package module wires inference into the API using modkit
package module

import (
	"parachute/internal/core/inference"
	modkit "parachute/internal/modkit"
	"parachute/internal/modkit/httpkit"
	inferhttp "parachute/internal/services/api/infer/http"
	infersvc "parachute/internal/services/api/infer/service"
)

// DefaultBodyLimit caps request bodies when no WithBodyLimit option is given
const DefaultBodyLimit = 8 << 20

// Ports is what the infer module exposes to other modules
type Ports struct {
	Engine *inference.Engine
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc infersvc.Service
}

// New constructs the infer module. deps.Rules is required
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.NewBase([]modkit.Option{
		modkit.WithName("infer"),
		modkit.WithPrefix("/infer"),
		modkit.WithBodyLimit(DefaultBodyLimit),
	}, opts...)}

	if deps.Rules == nil {
		panic("infer module requires a rule pack")
	}
	eng := inference.New(deps.Rules, deps.Logger("inference"))
	m.svc = infersvc.New(eng, infersvc.Config{Workers: m.Workers}, deps.MetricsOrNew())
	if m.Built.Ports == nil {
		m.Built.Ports = Ports{Engine: eng}
	}

	m.Routes = func(r httpkit.Router) {
		inferhttp.Register(r, m.svc, m.BodyLimit)
	}
	return m
}
