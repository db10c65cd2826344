// Package raw reads environment variables during bootstrap, before the logger
// exists. It must not import the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// lookup is swapped in tests
var lookup = os.Getenv

// Conf is a namespaced view over the environment, e.g. Prefix("LOG_")
type Conf struct{ prefix string }

// New returns the root view (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) val(k string) string { return strings.TrimSpace(lookup(c.prefix + k)) }

// Get returns the trimmed value or def when empty
func (c Conf) Get(key, def string) string {
	if v := c.val(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes (any case) as true and everything else as false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.val(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt parses a non-negative integer; anything else yields def
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.Atoi(c.val(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// GetOneOf returns the lower-cased value when it is one of allowed, def otherwise
func (c Conf) GetOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(c.val(key))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
