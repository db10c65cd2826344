// Package inference turns danmaku buffers into a single skip-point answer.
// Decode, dedupe, match each comment, then vote
package inference

import (
	"fmt"
	"math"
	"strings"

	"parachute/internal/core/cluster"
	"parachute/internal/core/dmseg"
	"parachute/internal/core/matcher"
)

// Kind says which feed a buffer came from
type Kind string

const (
	// KindSegment is a per-segment (six minute) realtime buffer
	KindSegment Kind = "segment"
	// KindHistory is a per-day history buffer
	KindHistory Kind = "history"
	// KindView is the special-danmaku view buffer; its pool 2 records are script danmaku and are skipped
	KindView Kind = "view"
)

// ParseKind accepts a buffer kind by name; empty means segment
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindSegment:
		return KindSegment, nil
	case KindHistory:
		return KindHistory, nil
	case KindView:
		return KindView, nil
	}
	return "", fmt.Errorf("unknown buffer kind %q", s)
}

// Buffer is one fetched batch of comments in segment encoding
type Buffer struct {
	Kind  Kind
	Label string
	Data  []byte
}

// Comment is the engine's input: a timeline position and the comment body
type Comment struct {
	TimeSeconds float64 `json:"time" yaml:"time"`
	Text        string  `json:"text" yaml:"text"`
}

// FromRecord projects a decoded record
func FromRecord(r dmseg.Record) Comment {
	return Comment{TimeSeconds: float64(r.ProgressMs) / 1000, Text: r.Content}
}

// ProgressMs is the timeline position in milliseconds, clamped to the
// uint32 range records use
func (c Comment) ProgressMs() uint32 {
	ms := math.Round(c.TimeSeconds * 1000)
	switch {
	case ms <= 0 || math.IsNaN(ms):
		return 0
	case ms >= math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(ms)
}

// Options tune one run
type Options struct {
	// DurationSeconds bounds accepted timestamps; 0 is unknown
	DurationSeconds int
}

// Source reports how one buffer decoded
type Source struct {
	Label  string       `json:"label,omitempty" yaml:"label,omitempty"`
	Kind   Kind         `json:"kind" yaml:"kind"`
	Report dmseg.Report `json:"report" yaml:"report"`
}

// Stats counts what happened to the input
type Stats struct {
	Buffers    int `json:"buffers" yaml:"buffers"`
	Records    int `json:"records" yaml:"records"`
	Corrupt    int `json:"corrupt_buffers" yaml:"corrupt_buffers"`
	Filtered   int `json:"filtered" yaml:"filtered"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Comments   int `json:"comments" yaml:"comments"`
	Textless   int `json:"textless" yaml:"textless"`
	Processed  int `json:"processed" yaml:"processed"`
	Candidates int `json:"candidates" yaml:"candidates"`
}

// RuleHit counts comments a rule matched, whether or not it won
type RuleHit struct {
	RuleID   string `json:"rule_id" yaml:"rule_id"`
	Priority int    `json:"priority" yaml:"priority"`
	Count    int    `json:"count" yaml:"count"`
}

// Result is the report of one run
type Result struct {
	BestTime   *int                `json:"best_time" yaml:"best_time"`
	BestLabel  string              `json:"best_label,omitempty" yaml:"best_label,omitempty"`
	VoteCount  int                 `json:"vote_count" yaml:"vote_count"`
	Clusters   []cluster.Cluster   `json:"clusters" yaml:"clusters"`
	Candidates []matcher.Candidate `json:"candidates" yaml:"candidates"`
	TimeCounts map[int]int         `json:"time_counts" yaml:"time_counts"`
	RuleHits   []RuleHit           `json:"rule_hits" yaml:"rule_hits"`
	Sources    []Source            `json:"sources,omitempty" yaml:"sources,omitempty"`
	Stats      Stats               `json:"stats" yaml:"stats"`
}

// Found reports whether a skip point was elected
func (r Result) Found() bool { return r.BestTime != nil }
