package realtime

import (
	"sort"
	"sync"
	"time"
)

// Polled is a timer for frame-driven loops: nothing fires until Poll is called
// with a time past an arm's next deadline. Any number of arms may be live at once.
type Polled struct {
	mu   sync.Mutex
	now  func() time.Time
	arms map[uint64]*polledArm
	seq  uint64
}

type polledArm struct {
	period time.Duration
	next   time.Time
	fire   func()
}

// NewPolled creates a Polled timer. A nil now uses time.Now.
func NewPolled(now func() time.Time) *Polled {
	if now == nil {
		now = time.Now
	}
	return &Polled{now: now, arms: make(map[uint64]*polledArm)}
}

// Arm adds a callback whose first fire is due one period from now.
func (p *Polled) Arm(period time.Duration, fire func()) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	id := p.seq
	p.arms[id] = &polledArm{period: period, next: p.now().Add(period), fire: fire}
	return func() {
		p.mu.Lock()
		delete(p.arms, id)
		p.mu.Unlock()
	}
}

// Armed reports whether any callback is live.
func (p *Polled) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.arms) > 0
}

// Poll fires every live callback whose deadline has passed, oldest arm first, and
// reports whether any fired. Missed periods are not replayed. An arm cancelled by an
// earlier callback in the same poll does not fire.
func (p *Polled) Poll(now time.Time) bool {
	p.mu.Lock()
	var due []uint64
	for id, a := range p.arms {
		if !now.Before(a.next) {
			due = append(due, id)
		}
	}
	p.mu.Unlock()
	sort.Slice(due, func(i, j int) bool { return due[i] < due[j] })

	fired := false
	for _, id := range due {
		p.mu.Lock()
		a, ok := p.arms[id]
		if ok {
			a.next = now.Add(a.period)
		}
		p.mu.Unlock()
		if !ok {
			continue
		}
		a.fire()
		fired = true
	}
	return fired
}
