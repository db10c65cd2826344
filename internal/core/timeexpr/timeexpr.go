// Package timeexpr converts the time expressions found in danmaku into seconds
package timeexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// forms are tried in order; the first that matches decides the value
var forms = []struct {
	re    *regexp.Regexp
	value func(g []string) (int, bool)
}{
	// H:MM:SS or M:SS
	{regexp.MustCompile(`(\d{1,3}):(\d{1,2})(?::(\d{1,2}))?`), func(g []string) (int, bool) {
		if g[3] != "" {
			return num(g[1])*3600 + num(g[2])*60 + num(g[3]), true
		}
		return num(g[1])*60 + num(g[2]), true
	}},
	// M分S秒 or M分S
	{regexp.MustCompile(`(\d{1,3})分(\d{1,2})(?:秒)?`), func(g []string) (int, bool) {
		return num(g[1])*60 + num(g[2]), true
	}},
	// M分 at the end
	{regexp.MustCompile(`(\d{1,3})分$`), func(g []string) (int, bool) {
		return num(g[1]) * 60, true
	}},
	// N秒, Ns, NS
	{regexp.MustCompile(`(\d+)[秒sS]`), func(g []string) (int, bool) {
		n, err := strconv.Atoi(g[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}},
	// M：S
	{regexp.MustCompile(`(\d{1,3})：(\d{1,2})`), func(g []string) (int, bool) {
		return num(g[1])*60 + num(g[2]), true
	}},
}

// Parse returns the number of seconds expressed by s.
// ok is false when no form matches or a seconds count overflows int
func Parse(s string) (seconds int, ok bool) {
	s = strings.TrimSpace(s)
	for _, f := range forms {
		g := f.re.FindStringSubmatch(s)
		if g == nil {
			continue
		}
		return f.value(g)
	}
	return 0, false
}

// num parses a bounded digit run; the patterns guarantee it is all digits
func num(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Format renders seconds as M:SS; minutes are not folded into hours
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
