package service

import (
	"context"
	"testing"

	"parachute/internal/core/rulepack"
	perr "parachute/internal/platform/errors"
	kit "parachute/internal/platform/testkit"
	"parachute/internal/services/api/rules/domain"
)

func TestCatalogue(t *testing.T) {
	p := rulepack.MustLoad()
	c := New(p, nil).Catalogue(context.Background())

	if c.Version != rulepack.Version || len(c.Rules) != len(p.Rules) {
		t.Fatalf("version %d rules %d", c.Version, len(c.Rules))
	}
	for i, r := range c.Rules {
		if r.Priority != i || r.ID == "" || r.Pattern == "" {
			t.Fatalf("rule %d = %+v", i, r)
		}
	}
	if len(c.Slots) == 0 {
		t.Fatal("slots missing")
	}
}

func TestMatch(t *testing.T) {
	s := New(rulepack.MustLoad(), nil)
	cases := []struct {
		name    string
		in      domain.MatchInput
		best    int // -1 means no candidate
		label   string
		matched bool
	}{
		{"thanks spelled", domain.MatchInput{Text: "谢谢八分十五郎"}, 495, "8:15", true},
		{"keyword", domain.MatchInput{Text: "空降1:30"}, 90, "1:30", true},
		{"implausible", domain.MatchInput{Text: "空降11:00", DurationSeconds: 600}, -1, "", true},
		{"chatter", domain.MatchInput{Text: "哈哈哈哈"}, -1, "", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			out, err := s.Match(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if tc.best < 0 {
				if out.Best != nil {
					t.Fatalf("best = %+v, want none", out.Best)
				}
			} else if out.Best == nil || out.Best.Seconds != tc.best {
				t.Fatalf("best = %+v, want %d", out.Best, tc.best)
			}
			if out.Label != tc.label {
				t.Fatalf("label = %q, want %q", out.Label, tc.label)
			}
			if (len(out.Matched) > 0) != tc.matched {
				t.Fatalf("matched = %+v", out.Matched)
			}
			if out.Normalized == "" {
				t.Fatal("normalized text missing")
			}
		})
	}
}

func TestMatch_NegativeDuration(t *testing.T) {
	_, err := New(rulepack.MustLoad(), nil).Match(context.Background(), domain.MatchInput{Text: "x", DurationSeconds: -1})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}

func TestNew_RequiresPack(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, nil) })
}
