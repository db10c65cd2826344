// Package config reads service configuration from environment variables.
// Required keys panic through the logger; optional keys fall back to a default
// and log a warning when the value does not parse
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"parachute/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. Prefix("PARACHUTE_API_")
type Conf struct{ prefix string }

// New returns the root view (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) get(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

func (c Conf) missing(k string) {
	logger.Get().Panic().Str("key", c.Key(k)).Msg("missing required env")
}

// MustString returns the value of key or panics when it is empty
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		c.missing(key)
	}
	return v
}

// MustInt returns the integer value of key or panics
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustDuration returns the duration value of key or panics
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid duration (e.g., 250ms, 2s, 1h)")
	}
	return d
}

// Require panics on the first key that is empty
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.get(k) == "" {
			c.missing(k)
		}
	}
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV splits a comma separated value, dropping blanks. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.get(key)
	if s == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

var byteUnits = []struct {
	suffix string
	mult   int64
}{
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
	{"GB", 1_000_000_000},
	{"MB", 1_000_000},
	{"KB", 1_000},
	{"B", 1},
}

// MayBytes reads a size such as "8MiB", "512KB" or a plain byte count.
// Non-positive or unparseable values log and return def
func (c Conf) MayBytes(key string, def int64) int64 {
	s := c.get(key)
	if s == "" {
		return def
	}
	if n, ok := parseBytes(s); ok {
		return n
	}
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Int64("default", def).Msg("invalid size; using default")
	return def
}

func parseBytes(s string) (int64, bool) {
	mult := int64(1)
	for _, u := range byteUnits {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			mult = u.mult
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 || n > (1<<62)/mult {
		return 0, false
	}
	return n * mult, true
}

// MayAddr returns a listen address. A bare port "4000" becomes ":4000";
// anything containing a colon is taken as is. Ports outside 1..65535 log and
// return def
func (c Conf) MayAddr(key, def string) string {
	s := c.get(key)
	if s == "" {
		return def
	}
	if strings.Contains(s, ":") {
		return s
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Str("default", def).Msg("invalid TCP port; using default")
		return def
	}
	return ":" + s
}

// MayEnum returns the value when it is one of allowed (case-insensitive) and
// panics otherwise. Empty returns def
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
