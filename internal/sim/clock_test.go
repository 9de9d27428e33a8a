package sim

import (
	"testing"
	"time"
)

func TestClockAdvance(t *testing.T) {
	c := NewClock()
	if c.Now() != 0 {
		t.Fatalf("fresh clock at %d, want 0", c.Now())
	}
	c.Advance(16 * time.Millisecond)
	c.Advance(16 * time.Millisecond)
	if c.Now() != 32 {
		t.Fatalf("clock at %d, want 32", c.Now())
	}
}

func TestClockStamp(t *testing.T) {
	c := NewClock()
	c.Advance(100 * time.Millisecond)
	if got := c.Stamp(250 * time.Millisecond); got != 350 {
		t.Fatalf("Stamp = %d, want 350", got)
	}
}

func TestSentinels(t *testing.T) {
	if Never.Valid() {
		t.Fatal("Never must not be a valid instant")
	}
	if !Immediately.Valid() {
		t.Fatal("Immediately must be a valid instant")
	}
}
