package inference

import (
	"cmp"
	"slices"

	"parachute/internal/core/cluster"
	"parachute/internal/core/dmseg"
	"parachute/internal/core/matcher"
	"parachute/internal/core/rulepack"
	"parachute/internal/core/timeexpr"
	"parachute/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Engine runs inferences over a shared rule catalogue. Safe for concurrent use
type Engine struct {
	m   *matcher.Matcher
	log *logger.Logger
}

// New creates an Engine; a nil log discards engine diagnostics
func New(p *rulepack.Pack, log *logger.Logger) *Engine {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Engine{m: matcher.New(p), log: log}
}

// Matcher exposes the per-comment matcher
func (e *Engine) Matcher() *matcher.Matcher { return e.m }

// Collect decodes buffers into comments, dropping script danmaku from view
// buffers and comments already in seen. A nil seen dedupes within this call only
func (e *Engine) Collect(buffers []Buffer, seen *Seen) ([]Comment, []Source, Stats) {
	if seen == nil {
		seen = NewSeen()
	}
	var (
		out     []Comment
		sources = make([]Source, 0, len(buffers))
		st      Stats
	)
	for _, b := range buffers {
		recs, rep := dmseg.DecodeReport(b.Data)
		st.Buffers++
		st.Records += len(recs)
		if rep.Corrupt {
			st.Corrupt++
			e.log.Debug().
				Str("label", b.Label).
				Str("kind", string(b.Kind)).
				Int("consumed", rep.Consumed).
				Int("size", len(b.Data)).
				Msg("buffer decode stopped early")
		}
		sources = append(sources, Source{Label: b.Label, Kind: b.Kind, Report: rep})

		for _, r := range recs {
			if b.Kind == KindView && r.Pool == dmseg.PoolSpecial {
				st.Filtered++
				continue
			}
			if !seen.Add(r.ProgressMs, r.Content) {
				st.Duplicates++
				continue
			}
			out = append(out, FromRecord(r))
		}
	}
	return out, sources, st
}

// Run decodes buffers and analyzes the resulting comments
func (e *Engine) Run(buffers []Buffer, seen *Seen, opts Options) Result {
	return e.RunMixed(buffers, nil, seen, opts)
}

// RunMixed is Run with already decoded comments added to the pool, such as a
// crawler's JSON dump. They go through the same dedupe as buffer records
func (e *Engine) RunMixed(buffers []Buffer, extra []Comment, seen *Seen, opts Options) Result {
	if seen == nil {
		seen = NewSeen()
	}
	comments, sources, st := e.Collect(buffers, seen)
	for _, c := range extra {
		if !seen.Add(c.ProgressMs(), c.Text) {
			st.Duplicates++
			continue
		}
		comments = append(comments, c)
	}
	res := e.Analyze(comments, opts)
	res.Sources = sources
	res.Stats.Buffers = st.Buffers
	res.Stats.Records = st.Records
	res.Stats.Corrupt = st.Corrupt
	res.Stats.Filtered = st.Filtered
	res.Stats.Duplicates = st.Duplicates
	return res
}

// Analyze matches every comment and elects the skip point. The result does
// not depend on the order of comments
func (e *Engine) Analyze(comments []Comment, opts Options) Result {
	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, func(a, b Comment) int {
		if c := cmp.Compare(a.TimeSeconds, b.TimeSeconds); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})

	rules := e.m.Rules()
	hits := make([]int, len(rules))
	res := Result{
		Candidates: []matcher.Candidate{},
		Clusters:   []cluster.Cluster{},
		TimeCounts: map[int]int{},
	}
	res.Stats.Comments = len(sorted)

	secs := make([]int, 0, len(sorted)/8)
	for _, c := range sorted {
		if c.Text == "" {
			res.Stats.Textless++
			continue
		}
		res.Stats.Processed++

		out := e.m.Evaluate(c.Text, opts.DurationSeconds)
		for _, p := range out.Matched {
			hits[p]++
		}
		if out.Best != nil {
			res.Candidates = append(res.Candidates, *out.Best)
			secs = append(secs, out.Best.Seconds)
		}
	}
	res.Stats.Candidates = len(res.Candidates)

	res.RuleHits = make([]RuleHit, len(rules))
	for i, r := range rules {
		res.RuleHits[i] = RuleHit{RuleID: r.ID, Priority: r.Priority, Count: hits[i]}
	}

	v := cluster.Elect(secs)
	if len(v.Clusters) > 0 {
		res.Clusters = v.Clusters
		res.TimeCounts = cluster.Counts(v.Clusters)
	}
	if t, ok := v.Time(); ok {
		res.BestTime = &t
		res.BestLabel = timeexpr.Format(t)
		res.VoteCount = v.Votes()
	}

	ev := e.log.Debug().
		Int("comments", res.Stats.Comments).
		Int("textless", res.Stats.Textless).
		Int("candidates", res.Stats.Candidates).
		Int("clusters", len(res.Clusters)).
		Int("votes", res.VoteCount)
	if res.BestTime != nil {
		ev = ev.Int("best_time", *res.BestTime)
	}
	ev.Msg("inference complete")

	return res
}
