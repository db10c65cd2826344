// Package cluster groups candidate timestamps and elects the consensus skip point
package cluster

import "slices"

// Tolerance is the largest gap, in seconds, that still links a timestamp to a cluster
const Tolerance = 2

// Cluster is a run of timestamps reported close together
type Cluster struct {
	Members []int `json:"members" yaml:"members"`
	Count   int   `json:"count" yaml:"count"`
	Min     int   `json:"min_time" yaml:"min_time"`
	Max     int   `json:"max_time" yaml:"max_time"`
}

// Vote is the outcome of an election
type Vote struct {
	Clusters []Cluster
	Best     *Cluster // nil when there were no timestamps
}

// Time returns the elected skip point, the earliest member of the winning cluster
func (v Vote) Time() (int, bool) {
	if v.Best == nil {
		return 0, false
	}
	return v.Best.Min, true
}

// Votes returns the size of the winning cluster
func (v Vote) Votes() int {
	if v.Best == nil {
		return 0
	}
	return v.Best.Count
}

// Group clusters timestamps single-link, first fit: each timestamp, in
// ascending order, joins the first cluster holding a member within tol
// (inclusive) or starts a new one. ts is not modified
func Group(ts []int, tol int) []Cluster {
	if len(ts) == 0 {
		return nil
	}
	sorted := slices.Clone(ts)
	slices.Sort(sorted)

	var out []Cluster
	for _, t := range sorted {
		placed := false
		for i := range out {
			if near(out[i].Members, t, tol) {
				out[i].Members = append(out[i].Members, t)
				out[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, Cluster{Members: []int{t}, Count: 1})
		}
	}
	for i := range out {
		out[i].Min = slices.Min(out[i].Members)
		out[i].Max = slices.Max(out[i].Members)
	}
	return out
}

func near(members []int, t, tol int) bool {
	for _, m := range members {
		d := m - t
		if d < 0 {
			d = -d
		}
		if d <= tol {
			return true
		}
	}
	return false
}

// Pick returns the index of the cluster with the most members; the first
// one found wins a tie. -1 for no clusters
func Pick(cs []Cluster) int {
	best, top := -1, 0
	for i, c := range cs {
		if c.Count > top {
			best, top = i, c.Count
		}
	}
	return best
}

// Elect groups ts with Tolerance and picks the winner
func Elect(ts []int) Vote {
	cs := Group(ts, Tolerance)
	v := Vote{Clusters: cs}
	if i := Pick(cs); i >= 0 {
		v.Best = &v.Clusters[i]
	}
	return v
}

// Counts maps each cluster's earliest time to its size
func Counts(cs []Cluster) map[int]int {
	out := make(map[int]int, len(cs))
	for _, c := range cs {
		out[c.Min] = c.Count
	}
	return out
}
