package environ

import (
	"fmt"
	"sync"
	"testing"
)

func TestOSLookup(t *testing.T) {
	t.Setenv("ENVIRON_TEST_PRESENT", "value1")

	got, ok := OS{}.Lookup("ENVIRON_TEST_PRESENT")
	if !ok || got != "value1" {
		t.Fatalf("expected value1, got %q (ok=%v)", got, ok)
	}
	if _, ok := (OS{}).Lookup("ENVIRON_TEST_DEFINITELY_MISSING"); ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}

func TestMapCopiesInput(t *testing.T) {
	t.Parallel()

	src := map[string]string{"A": "1"}
	m := NewMap(src)
	src["A"] = "changed"

	if got, _ := m.Lookup("A"); got != "1" {
		t.Fatalf("expected map to hold its own copy, got %q", got)
	}
}

func TestMapSetUnset(t *testing.T) {
	t.Parallel()

	var m Map
	m.Set("EMPTY", "")
	if got, ok := m.Lookup("EMPTY"); !ok || got != "" {
		t.Fatalf("expected empty value to be present, got %q (ok=%v)", got, ok)
	}

	m.Unset("EMPTY")
	if _, ok := m.Lookup("EMPTY"); ok {
		t.Fatalf("expected key to be removed")
	}
}

func TestMapConcurrentAccess(t *testing.T) {
	m := NewMap(nil)
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(2)

		go func(n int) {
			defer wg.Done()
			m.Set(fmt.Sprintf("K%d", n), "v")
		}(i)

		go func(n int) {
			defer wg.Done()
			m.Lookup(fmt.Sprintf("K%d", n))
		}(i)
	}

	wg.Wait()

	if _, ok := m.Lookup("K31"); !ok {
		t.Fatalf("expected K31 to be set")
	}
}
