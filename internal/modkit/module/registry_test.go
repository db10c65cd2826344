package module

import (
	"slices"
	"sync"
	"testing"
)

type matcherPorts struct {
	Rules int
}

func TestRegistry_PortsAs(t *testing.T) {
	Reset()
	Register("rules", matcherPorts{Rules: 13})

	if got, ok := PortsAs[matcherPorts]("rules"); !ok || got.Rules != 13 {
		t.Fatalf("PortsAs = %+v, %v", got, ok)
	}
	if got, ok := PortsAs[matcherPorts]("infer"); ok || got != (matcherPorts{}) {
		t.Fatalf("missing name = %+v, %v; want zero, false", got, ok)
	}
	if _, ok := PortsAs[string]("rules"); ok {
		t.Fatalf("type mismatch reported ok")
	}

	Register("rules", matcherPorts{Rules: 14})
	if got, _ := PortsAs[matcherPorts]("rules"); got.Rules != 14 {
		t.Fatalf("re-register kept %d", got.Rules)
	}

	Reset()
	if _, ok := PortsAs[matcherPorts]("rules"); ok {
		t.Fatalf("entry survived Reset")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	Reset()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				Register("infer", matcherPorts{Rules: w*100 + i})
				_, _ = PortsAs[matcherPorts]("infer")
				_ = Names()
			}
		}(w)
	}
	wg.Wait()

	if got := Names(); !slices.Equal(got, []string{"infer"}) {
		t.Fatalf("Names = %v", got)
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	Reset()
	for _, n := range []string{"rules", "infer", "meta"} {
		Register(n, nil)
	}
	if got := Names(); !slices.Equal(got, []string{"infer", "meta", "rules"}) {
		t.Fatalf("Names = %v", got)
	}
}
