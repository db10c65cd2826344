// Package domain holds DTOs for the rule catalogue endpoints
package domain

import (
	"context"

	"parachute/internal/core/matcher"
)

// Rule is one catalogue entry as served
type Rule struct {
	ID          string   `json:"id" example:"keyword_then_time"`
	Kind        string   `json:"kind" example:"keyword_then_time"`
	Priority    int      `json:"priority" example:"0"`
	Pattern     string   `json:"pattern"`
	Description string   `json:"description,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Catalogue is the full rule listing in priority order
type Catalogue struct {
	Version int               `json:"version" example:"1"`
	Rules   []Rule            `json:"rules"`
	Slots   map[string]string `json:"slots"`
}

// MatchInput is a single comment to explain
type MatchInput struct {
	Text            string `json:"text" validate:"required,max=1000" example:"谢谢八分十五郎"`
	DurationSeconds int    `json:"duration_seconds" validate:"gte=0" example:"0"`
}

// RuleRef names a rule that matched
type RuleRef struct {
	ID       string `json:"id"`
	Priority int    `json:"priority"`
}

// MatchOutput explains how one comment was read
type MatchOutput struct {
	Text       string             `json:"text"`
	Normalized string             `json:"normalized"`
	Matched    []RuleRef          `json:"matched"`
	Best       *matcher.Candidate `json:"best,omitempty"`
	Label      string             `json:"label,omitempty" example:"8:15"`
}

// ServicePort defines the service contract for the catalogue
type ServicePort interface {
	Catalogue(ctx context.Context) Catalogue
	Match(ctx context.Context, in MatchInput) (MatchOutput, error)
}
