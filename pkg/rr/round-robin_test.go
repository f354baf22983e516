package rr

import (
	"sync/atomic"
	"testing"
)

func TestNext(t *testing.T) {
	var list atomic.Pointer[[]string]
	list.Store(&[]string{"a", "b", "c"})

	r := New(&list)

	want := []string{"a", "b", "c", "a", "b"}
	for i, w := range want {
		got, ok := r.Next()
		if !ok {
			t.Fatalf("iteration %d: not ok", i)
		}
		if got != w {
			t.Fatalf("iteration %d: want %s, got %s", i, w, got)
		}
	}

	if r.Len() != 3 {
		t.Fatalf("want len 3, got %d", r.Len())
	}
}

func TestNextEmpty(t *testing.T) {
	var list atomic.Pointer[[]string]
	list.Store(&[]string{})

	r := New(&list)

	if _, ok := r.Next(); ok {
		t.Fatal("expected not ok on empty list")
	}
}
