package testutil

import (
	"testing"
	"time"
)

func TestFakeClock_AdvanceAndSet(t *testing.T) {
	start := time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local)
	c := NewFakeClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}

	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("after Advance: Now() = %v", got)
	}

	pinned := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	c.Set(pinned)
	if got := c.Now(); !got.Equal(pinned) {
		t.Errorf("after Set: Now() = %v, want %v", got, pinned)
	}
}

func TestFakeClock_NowIsStable(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local))
	if !c.Now().Equal(c.Now()) {
		t.Error("Now() must not move on its own")
	}
}
