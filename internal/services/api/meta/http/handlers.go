// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"parachute/internal/core/version"
	"parachute/internal/modkit/httpkit"
	"parachute/internal/modkit/module"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	RulesVersion int
	RuleCount    int

	now func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.now == nil {
		d.now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"parachute-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name         string   `json:"name"          example:"parachute-api"`
	Started      string   `json:"started"       example:"2025-09-03T13:00:00Z"`
	Uptime       int64    `json:"uptime"        example:"300"`
	Modules      []string `json:"modules"`
	RulesVersion int      `json:"rules_version" example:"1"`
	RuleCount    int      `json:"rule_count"    example:"13"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:         h.deps.ServiceName,
		Started:      h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:       int64(uptime / time.Second),
		Modules:      module.Names(),
		RulesVersion: h.deps.RulesVersion,
		RuleCount:    h.deps.RuleCount,
	}, nil
}
