package clock

import (
	"testing"
	"time"
)

func TestFakeAdvance(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	if !f.Now().Equal(start) {
		t.Fatalf("want %s, got %s", start, f.Now())
	}

	f.Advance(time.Minute)
	if !f.Now().Equal(start.Add(time.Minute)) {
		t.Fatalf("advance failed: %s", f.Now())
	}

	f.Set(start)
	if !f.Now().Equal(start) {
		t.Fatalf("set failed: %s", f.Now())
	}
}
