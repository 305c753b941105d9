package realtime

import (
	"testing"
	"time"
)

func TestPolled_FiresOnlyWhenDue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return start })
	var n int
	p.Arm(100*time.Millisecond, func() { n++ })

	if p.Poll(start.Add(50 * time.Millisecond)) {
		t.Error("fired before the deadline")
	}
	if !p.Poll(start.Add(100 * time.Millisecond)) {
		t.Error("did not fire at the deadline")
	}
	// A long frame does not replay missed periods.
	if !p.Poll(start.Add(time.Second)) || n != 2 {
		t.Errorf("n=%d after a late poll, want 2", n)
	}
	if p.Poll(start.Add(time.Second + 50*time.Millisecond)) {
		t.Error("fired twice in one period")
	}
}

func TestPolled_Cancel(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return start })
	cancel := p.Arm(10*time.Millisecond, func() { t.Error("cancelled arm fired") })
	cancel()
	if p.Armed() {
		t.Error("Armed after cancel")
	}
	p.Poll(start.Add(time.Second))
}

func TestPolled_CancelKeepsOtherArms(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return start })
	old := p.Arm(10*time.Millisecond, func() {})
	var fired bool
	p.Arm(20*time.Millisecond, func() { fired = true })
	old()
	if !p.Armed() {
		t.Fatal("cancelling one arm removed the other")
	}
	p.Poll(start.Add(20 * time.Millisecond))
	if !fired {
		t.Error("live arm did not fire")
	}
}

func TestPolled_RearmInsideFire(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return now })
	var cancel func()
	var second bool
	cancel = p.Arm(10*time.Millisecond, func() {
		cancel()
		p.Arm(5*time.Millisecond, func() { second = true })
	})
	now = now.Add(10 * time.Millisecond)
	p.Poll(now)
	now = now.Add(5 * time.Millisecond)
	p.Poll(now)
	if !second {
		t.Error("arm made inside fire did not run")
	}
}

func TestPolled_ConcurrentArms(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return start })
	var fast, slow int
	p.Arm(10*time.Millisecond, func() { fast++ })
	p.Arm(30*time.Millisecond, func() { slow++ })

	for ms := 10; ms <= 30; ms += 10 {
		p.Poll(start.Add(time.Duration(ms) * time.Millisecond))
	}
	if fast != 3 || slow != 1 {
		t.Errorf("fast=%d slow=%d, want 3 and 1", fast, slow)
	}
}

func TestPolled_CancelledByEarlierFire(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPolled(func() time.Time { return start })
	var second func()
	p.Arm(time.Millisecond, func() { second() })
	second = p.Arm(time.Millisecond, func() { t.Error("arm cancelled earlier in the same poll fired") })
	p.Poll(start.Add(time.Millisecond))
}
