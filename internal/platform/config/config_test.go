package config

import (
	"testing"
	"time"

	kit "parachute/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("PARACHUTE_").Prefix("API_")
	if got := api.Key("PORT"); got != "PARACHUTE_API_PORT" {
		t.Fatalf("Key() = %q, want %q", got, "PARACHUTE_API_PORT")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("APP_")
	t.Setenv("APP_NAME", "  parachute ")
	if got := c.MustString("NAME"); got != "parachute" {
		t.Fatalf("MustString = %q, want %q", got, "parachute")
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMustInt(t *testing.T) {
	c := New().Prefix("SVC_")
	t.Setenv("SVC_WORKERS", "  8 ")
	if got := c.MustInt("WORKERS"); got != 8 {
		t.Fatalf("MustInt = %d, want 8", got)
	}
	kit.MustPanic(t, func() { _ = c.MustInt("MISSING") })
	t.Setenv("SVC_BAD", "x")
	kit.MustPanic(t, func() { _ = c.MustInt("BAD") })
}

func TestMustDuration(t *testing.T) {
	c := New().Prefix("D_")
	t.Setenv("D_TIMEOUT", " 250ms ")
	if got := c.MustDuration("TIMEOUT"); got != 250*time.Millisecond {
		t.Fatalf("MustDuration = %v, want %v", got, 250*time.Millisecond)
	}
	t.Setenv("D_BAD", "nope")
	kit.MustPanic(t, func() { _ = c.MustDuration("BAD") })
}

func TestRequire(t *testing.T) {
	c := New().Prefix("REQ_")
	t.Setenv("REQ_A", "x")
	t.Setenv("REQ_B", "y")
	t.Setenv("REQ_WS", "   ")
	c.Require("A", "B")
	kit.MustPanic(t, func() { c.Require("A", "C") })
	kit.MustPanic(t, func() { c.Require("WS") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("M_")
	t.Setenv("M_NAME", " parachute ")
	t.Setenv("M_INT", " 7 ")
	t.Setenv("M_INT_BAD", "x")
	t.Setenv("M_ON", "true")
	t.Setenv("M_ON_BAD", "nope")
	t.Setenv("M_DUR", "150ms")
	t.Setenv("M_DUR_BAD", "soon")

	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayString("NAME", "x"); got != "parachute" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("INT", 0); got != 7 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("INT_BAD", 3); got != 3 {
		t.Fatalf("MayInt bad = %d, want default 3", got)
	}
	if !c.MayBool("ON", false) {
		t.Fatalf("MayBool want true")
	}
	if c.MayBool("ON_BAD", false) {
		t.Fatalf("MayBool bad want default false")
	}
	if got := c.MayDuration("DUR", time.Second); got != 150*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("DUR_BAD", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration bad = %v, want default", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"fallback"}

	t.Setenv("CSV_ORIGINS", " https://a.example, https://b.example , ,")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("MayCSV = %#v", got)
	}

	t.Setenv("CSV_BLANK", " , ,  ,")
	if got := c.MayCSV("BLANK", def); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty = %#v, want default", got)
	}
}

func TestMayBytes(t *testing.T) {
	c := New().Prefix("SZ_")
	cases := []struct {
		val  string
		want int64
	}{
		{"", 42},
		{"1024", 1024},
		{"8MiB", 8 << 20},
		{"512 KiB", 512 << 10},
		{"2MB", 2_000_000},
		{"10B", 10},
		{"0", 42},
		{"-5", 42},
		{"lots", 42},
		{"1.5MiB", 42},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("SZ_LIMIT", tc.val)
			if got := c.MayBytes("LIMIT", 42); got != tc.want {
				t.Fatalf("MayBytes(%q) = %d, want %d", tc.val, got, tc.want)
			}
		})
	}
}

func TestMayAddr(t *testing.T) {
	c := New().Prefix("A_")
	cases := []struct {
		val  string
		want string
	}{
		{"", ":4000"},
		{"8080", ":8080"},
		{":9000", ":9000"},
		{"127.0.0.1:0", "127.0.0.1:0"},
		{"70000", ":4000"},
		{"http", ":4000"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.val, func(t *testing.T) {
			t.Setenv("A_PORT", tc.val)
			if got := c.MayAddr("PORT", ":4000"); got != tc.want {
				t.Fatalf("MayAddr(%q) = %q, want %q", tc.val, got, tc.want)
			}
		})
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")

	if got := c.MayEnum("MISS", "json", "json", "yaml", "text"); got != "json" {
		t.Fatalf("MayEnum default = %q", got)
	}
	if got := c.MayEnum("MISS", "", "json"); got != "" {
		t.Fatalf("MayEnum empty default = %q, want empty", got)
	}

	t.Setenv("E_FMT", "YAML")
	if got := c.MayEnum("FMT", "json", "json", "yaml", "text"); got != "yaml" {
		t.Fatalf("MayEnum = %q, want yaml", got)
	}

	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "yaml") })
}
