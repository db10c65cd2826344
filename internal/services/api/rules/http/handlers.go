// Package http provides http transport for the rule catalogue
package http

import (
	stdhttp "net/http"

	"parachute/internal/modkit/httpkit"
	"parachute/internal/services/api/rules/domain"
	svc "parachute/internal/services/api/rules/service"
)

// Register mounts the catalogue endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON(r, "/match", h.match)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /rules Rules rulesList
// @Summary List the compiled rule catalogue in priority order
// @Tags Rules
// @Produce json
// @Success 200 {object} domain.Catalogue "ok"
// @Router /rules [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.Catalogue(r.Context()), nil
}

// swagger:route POST /rules/match Rules rulesMatch
// @Summary Explain how one comment is matched
// @Tags Rules
// @Accept json
// @Produce json
// @Param payload body domain.MatchInput true "Comment"
// @Success 200 {object} domain.MatchOutput "ok"
// @Router /rules/match [post]
func (h *handlers) match(r *stdhttp.Request, in domain.MatchInput) (any, error) {
	return h.svc.Match(r.Context(), in)
}
