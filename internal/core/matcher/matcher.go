// Package matcher extracts at most one skip-point candidate from a comment
package matcher

import (
	"strings"

	"parachute/internal/core/normalize"
	"parachute/internal/core/rulepack"
	"parachute/internal/core/timeexpr"
)

// MinSeconds is the earliest timestamp accepted as a skip point
const MinSeconds = 5

// Candidate is the winning extraction for one comment
type Candidate struct {
	Text      string `json:"text" yaml:"text"`
	RuleID    string `json:"rule_id" yaml:"rule_id"`
	Priority  int    `json:"priority" yaml:"priority"`
	Extracted string `json:"extracted" yaml:"extracted"`
	Seconds   int    `json:"seconds" yaml:"seconds"`
}

// Outcome is the full evaluation of one comment
type Outcome struct {
	Normalized string     // text the rules saw first
	Matched    []int      // priority of every rule whose pattern matched, plausible or not
	Best       *Candidate // nil when no rule produced a plausible time
}

// Matcher runs the rule catalogue over comments. Safe for concurrent use
type Matcher struct {
	p    *rulepack.Pack
	norm *normalize.Normalizer
}

// New creates a Matcher over a compiled pack
func New(p *rulepack.Pack) *Matcher {
	return &Matcher{p: p, norm: normalize.New()}
}

// Rules returns the catalogue in priority order
func (m *Matcher) Rules() []rulepack.Rule { return m.p.Rules }

// Plausible reports whether seconds can be a skip point in a video of the
// given duration; a duration <= 0 is unknown
func Plausible(seconds, durationSeconds int) bool {
	if seconds < MinSeconds {
		return false
	}
	return durationSeconds <= 0 || seconds <= durationSeconds
}

// Match returns the candidate for text, if any
func (m *Matcher) Match(text string, durationSeconds int) (Candidate, bool) {
	out := m.Evaluate(text, durationSeconds)
	if out.Best == nil {
		return Candidate{}, false
	}
	return *out.Best, true
}

// Evaluate tries every rule in priority order, normalized text first and raw
// text second. The lowest priority rule whose expression parses to a
// plausible time wins; later rules are still tried so Matched is complete
func (m *Matcher) Evaluate(text string, durationSeconds int) Outcome {
	if text == "" {
		return Outcome{}
	}
	views := m.norm.Views(text)
	out := Outcome{Normalized: views.Normalized}

	texts := views.Texts()
	for i, t := range texts {
		texts[i] = maskMinuteWord(t)
	}

	for i := range m.p.Rules {
		r := &m.p.Rules[i]

		var (
			expr    string
			matched bool
		)
		for _, t := range texts {
			if expr, matched = r.Match(t); matched {
				break
			}
		}
		if !matched {
			continue
		}
		out.Matched = append(out.Matched, r.Priority)

		if out.Best != nil || expr == "" {
			continue
		}
		secs, ok := timeexpr.Parse(expr)
		if !ok || !Plausible(secs, durationSeconds) {
			continue
		}
		out.Best = &Candidate{
			Text:      text,
			RuleID:    r.ID,
			Priority:  r.Priority,
			Extracted: expr,
			Seconds:   secs,
		}
	}
	return out
}

// minuteMask stands in for 分 in the duration word 分钟 ("minutes long").
// A bare N分 is a time but N分钟 never is; no time expression can contain
// the mask rune, so "5分钟" stays out of every capture
const minuteMask = "\uE000钟"

func maskMinuteWord(s string) string {
	if !strings.Contains(s, "分钟") {
		return s
	}
	return strings.ReplaceAll(s, "分钟", minuteMask)
}
