// Package service serves the compiled rule catalogue and single comment matches
package service

import (
	"context"

	"parachute/internal/core/matcher"
	"parachute/internal/core/rulepack"
	"parachute/internal/core/timeexpr"
	perr "parachute/internal/platform/errors"
	"parachute/internal/services/api/rules/domain"
)

// Service defines the service contract for the catalogue
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	pack *rulepack.Pack
	m    *matcher.Matcher
}

// New creates the service. m may be nil, in which case one is built from p
func New(p *rulepack.Pack, m *matcher.Matcher) *Svc {
	if p == nil {
		panic("rules.Service requires a non nil rule pack")
	}
	if m == nil {
		m = matcher.New(p)
	}
	return &Svc{pack: p, m: m}
}

// Catalogue lists every rule in priority order
func (s *Svc) Catalogue(_ context.Context) domain.Catalogue {
	out := domain.Catalogue{
		Version: s.pack.Version,
		Rules:   make([]domain.Rule, 0, len(s.pack.Rules)),
		Slots:   s.pack.Slots,
	}
	for _, r := range s.pack.Rules {
		out.Rules = append(out.Rules, domain.Rule{
			ID:          r.ID,
			Kind:        string(r.Kind),
			Priority:    r.Priority,
			Pattern:     r.Pattern,
			Description: r.Description,
			Examples:    r.Examples,
		})
	}
	return out
}

// Match evaluates one comment against every rule
func (s *Svc) Match(_ context.Context, in domain.MatchInput) (domain.MatchOutput, error) {
	if in.DurationSeconds < 0 {
		return domain.MatchOutput{}, perr.WithField(perr.InvalidArgf("duration_seconds must be 0 or greater"), "duration_seconds")
	}
	o := s.m.Evaluate(in.Text, in.DurationSeconds)
	out := domain.MatchOutput{
		Text:       in.Text,
		Normalized: o.Normalized,
		Matched:    make([]domain.RuleRef, 0, len(o.Matched)),
		Best:       o.Best,
	}
	rules := s.m.Rules()
	for _, p := range o.Matched {
		out.Matched = append(out.Matched, domain.RuleRef{ID: rules[p].ID, Priority: p})
	}
	if o.Best != nil {
		out.Label = timeexpr.Format(o.Best.Seconds)
	}
	return out, nil
}
