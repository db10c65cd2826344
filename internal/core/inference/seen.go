package inference

import "sync"

type seenKey struct {
	progressMs uint32
	content    string
}

// Seen remembers comments by (progress_ms, content) so overlapping buffers
// count each comment once. Pass the same Seen to several runs to dedupe
// across them. Safe for concurrent use
type Seen struct {
	mu sync.Mutex
	m  map[seenKey]struct{}
}

// NewSeen returns an empty set
func NewSeen() *Seen {
	return &Seen{m: make(map[seenKey]struct{})}
}

// Add records the comment and reports whether it was new
func (s *Seen) Add(progressMs uint32, content string) bool {
	k := seenKey{progressMs: progressMs, content: content}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[seenKey]struct{})
	}
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = struct{}{}
	return true
}

// Len returns how many distinct comments were added
func (s *Seen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
