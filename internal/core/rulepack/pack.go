// Package rulepack loads and compiles the skip-point rule catalogue from the embedded rules.json.
// Rule order is priority order: the first rule in the file is the most authoritative
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

//go:embed rules.json
var embedded []byte

// Version is the rules.json schema version this package understands
const Version = 1

// Kind tags the shape of a rule
type Kind string

const (
	// KindKeywordThenTime is a cue word followed by a time ("空降1:30")
	KindKeywordThenTime Kind = "keyword_then_time"
	// KindTimeThenKeyword is a time followed by a cue word ("1:30空降")
	KindTimeThenKeyword Kind = "time_then_keyword"
	// KindStandalone is a comment holding nothing but a time
	KindStandalone Kind = "standalone"
)

// rawSlot is either a list of literal terms or a raw regex fragment
type rawSlot struct {
	Terms   []string `json:"terms,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
}

type rawRule struct {
	ID              string   `json:"id"`
	Kind            Kind     `json:"kind"`
	Pattern         string   `json:"pattern"`
	CaseInsensitive bool     `json:"case_insensitive"`
	Description     string   `json:"description,omitempty"`
	Examples        []string `json:"examples,omitempty"`
}

type rawPack struct {
	Version  int                `json:"version"`
	Meta     map[string]any     `json:"meta"`
	Slots    map[string]rawSlot `json:"slots"`
	Fallback string             `json:"fallback"`
	Rules    []rawRule          `json:"rules"`
}

// Pack is the compiled catalogue. It is read-only after Load and safe for concurrent use
type Pack struct {
	Version int
	Meta    map[string]any

	// Rules in priority order; Rules[i].Priority == i
	Rules []Rule

	// Fallback recovers a time expression from a whole match when a rule has no capture group
	Fallback *regexp.Regexp

	// Slots maps slot name to its expanded non-capturing group
	Slots map[string]string
}

// Rule is one compiled extraction rule
type Rule struct {
	ID              string   `json:"id"`
	Kind            Kind     `json:"kind"`
	Priority        int      `json:"priority"`
	Pattern         string   `json:"pattern"`
	Expanded        string   `json:"expanded"`
	CaseInsensitive bool     `json:"case_insensitive"`
	Description     string   `json:"description,omitempty"`
	Examples        []string `json:"examples,omitempty"`

	re       *regexp.Regexp
	fallback *regexp.Regexp
}

var slotRef = regexp.MustCompile(`\{([A-Z][A-Z0-9_]*)\}`)

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) {
	return Parse(embedded)
}

// MustLoad is Load for program start-up
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse compiles a rules.json document. Any catalogue defect is an error:
// unknown slots, bad regexes, duplicate ids, and rules that can never yield
// a time expression
func Parse(data []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if rp.Version != Version {
		return nil, fmt.Errorf("rulepack: unsupported rules.json version %d (want %d)", rp.Version, Version)
	}
	if len(rp.Rules) == 0 {
		return nil, fmt.Errorf("rulepack: no rules")
	}

	p := &Pack{
		Version: rp.Version,
		Meta:    rp.Meta,
		Slots:   make(map[string]string, len(rp.Slots)),
	}

	for name, s := range rp.Slots {
		group, err := slotGroup(s)
		if err != nil {
			return nil, fmt.Errorf("rulepack: slot %s: %w", name, err)
		}
		p.Slots[name] = group
	}

	if rp.Fallback != "" {
		re, err := regexp.Compile(rp.Fallback)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile fallback: %w", err)
		}
		p.Fallback = re
	}

	seen := make(map[string]struct{}, len(rp.Rules))
	for i, r := range rp.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rulepack: rule %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rulepack: duplicate rule id %q", r.ID)
		}
		seen[r.ID] = struct{}{}

		switch r.Kind {
		case KindKeywordThenTime, KindTimeThenKeyword, KindStandalone:
		default:
			return nil, fmt.Errorf("rulepack: rule %q: unknown kind %q", r.ID, r.Kind)
		}

		exp, err := expandSlots(r.Pattern, p.Slots)
		if err != nil {
			return nil, fmt.Errorf("rulepack: rule %q: %w", r.ID, err)
		}
		if r.CaseInsensitive {
			exp = "(?i)" + exp
		}
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, fmt.Errorf("rulepack: rule %q: compile %q: %w", r.ID, exp, err)
		}
		if re.NumSubexp() == 0 && p.Fallback == nil {
			return nil, fmt.Errorf("rulepack: rule %q has no capture group and the pack has no fallback", r.ID)
		}

		p.Rules = append(p.Rules, Rule{
			ID:              r.ID,
			Kind:            r.Kind,
			Priority:        i,
			Pattern:         r.Pattern,
			Expanded:        exp,
			CaseInsensitive: r.CaseInsensitive,
			Description:     r.Description,
			Examples:        r.Examples,
			re:              re,
			fallback:        p.Fallback,
		})
	}

	return p, nil
}

// Match reports whether the rule matches text and, if it does, the time
// expression it captured. expr is empty when the rule matched but no time
// expression could be recovered
func (r *Rule) Match(text string) (expr string, matched bool) {
	m := r.re.FindStringSubmatchIndex(text)
	if m == nil {
		return "", false
	}
	if len(m) >= 4 && m[2] >= 0 && m[3] > m[2] {
		return text[m[2]:m[3]], true
	}
	if r.fallback != nil {
		return r.fallback.FindString(text[m[0]:m[1]]), true
	}
	return "", true
}

// Regexp returns the compiled pattern
func (r *Rule) Regexp() *regexp.Regexp { return r.re }

// slotGroup renders a slot as a non-capturing group. Terms are regex-quoted
// and keep their authored order, which decides alternation preference
func slotGroup(s rawSlot) (string, error) {
	switch {
	case len(s.Terms) > 0 && s.Pattern != "":
		return "", fmt.Errorf("both terms and pattern set")
	case s.Pattern != "":
		if _, err := regexp.Compile(s.Pattern); err != nil {
			return "", err
		}
		return "(?:" + s.Pattern + ")", nil
	case len(s.Terms) > 0:
		parts := make([]string, 0, len(s.Terms))
		seen := make(map[string]struct{}, len(s.Terms))
		for _, t := range s.Terms {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			parts = append(parts, regexp.QuoteMeta(t))
		}
		if len(parts) == 0 {
			return "", fmt.Errorf("no terms")
		}
		return "(?:" + strings.Join(parts, "|") + ")", nil
	default:
		return "", fmt.Errorf("empty slot")
	}
}

// expandSlots replaces every {NAME} with its slot group. Regex quantifiers such
// as {1,3} are left alone because slot names are upper case identifiers
func expandSlots(pattern string, slots map[string]string) (string, error) {
	var missing []string
	out := slotRef.ReplaceAllStringFunc(pattern, func(tok string) string {
		name := tok[1 : len(tok)-1]
		g, ok := slots[name]
		if !ok {
			missing = append(missing, name)
			return tok
		}
		return g
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown slot %s", strings.Join(missing, ", "))
	}
	return out, nil
}
