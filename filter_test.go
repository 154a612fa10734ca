package mdmath

import (
	"strings"
	"sync"
	"testing"
)

func appendFilter(s string) Filter {
	return FilterFunc(func(e Expression) Expression {
		e.Source += s
		return e
	})
}

func TestFilterChain_OrderAndLen(t *testing.T) {
	t.Parallel()

	var chain FilterChain
	if chain.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", chain.Len())
	}

	chain.Add(appendFilter("a"))
	chain.Add(appendFilter("b"))
	chain.Add(appendFilter("c"))

	if chain.Len() != 3 {
		t.Errorf("Len() = %d, want 3", chain.Len())
	}
	if got := chain.Apply(Expression{Source: ">"}); got.Source != ">abc" {
		t.Errorf("Apply() = %q, want %q", got.Source, ">abc")
	}
}

func TestFilterChain_EmptyApply(t *testing.T) {
	t.Parallel()

	var chain FilterChain
	in := Expression{Source: `a \\ b`, Display: true}
	if got := chain.Apply(in); got != in {
		t.Errorf("Apply() on empty chain = %+v, want %+v", got, in)
	}
}

func TestRegistration_Remove(t *testing.T) {
	t.Parallel()

	var chain FilterChain
	chain.Add(appendFilter("a"))
	reg := chain.Add(appendFilter("b"))
	chain.Add(appendFilter("c"))

	reg.Remove()
	reg.Remove()

	if chain.Len() != 2 {
		t.Errorf("Len() = %d, want 2", chain.Len())
	}
	if got := chain.Apply(Expression{}); got.Source != "ac" {
		t.Errorf("Apply() = %q, want %q", got.Source, "ac")
	}
}

func TestFilterChain_ConcurrentApply(t *testing.T) {
	t.Parallel()

	var chain FilterChain
	chain.Add(FilterFunc(func(e Expression) Expression {
		e.Source = strings.ToUpper(e.Source)
		return e
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := chain.Apply(Expression{Source: "x"}); got.Source != "X" {
				t.Errorf("Apply() = %q, want X", got.Source)
			}
		}()
	}
	wg.Wait()
}
