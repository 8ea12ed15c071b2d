package core

import "time"

// FixedStep runs simulation updates at a steady ticks-per-second rate,
// independent of how often frames are presented.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxTicks    int
	ticks       uint64
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the fixed tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// SetMaxTicks caps the ticks returned per Advance call. Zero disables the cap.
func (f *FixedStep) SetMaxTicks(n int) {
	if n < 0 {
		n = 0
	}
	f.maxTicks = n
}

// Ticks reports how many ticks have been handed out so far.
func (f *FixedStep) Ticks() uint64 { return f.ticks }

// Alpha reports the leftover fraction of a tick held in the accumulator.
func (f *FixedStep) Alpha() float64 {
	return float64(f.accumulator) / float64(f.step)
}

// Advance adds elapsed time to the accumulator and returns how many whole
// ticks should run now. Negative elapsed values are ignored.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		f.accumulator += elapsed
	}
	n := 0
	for f.accumulator >= f.step {
		if f.maxTicks > 0 && n == f.maxTicks {
			// Drop the backlog instead of carrying it into the next frame.
			f.accumulator %= f.step
			break
		}
		f.accumulator -= f.step
		n++
	}
	f.ticks += uint64(n)
	return n
}

// Frame measures wall time since the previous call and advances by it. The
// first call only records the timestamp.
func (f *FixedStep) Frame(now time.Time) int {
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	delta := now.Sub(f.last)
	f.last = now
	return f.Advance(delta)
}

// Run advances by elapsed and invokes tick once per due tick.
func (f *FixedStep) Run(elapsed time.Duration, tick func()) int {
	n := f.Advance(elapsed)
	for i := 0; i < n; i++ {
		tick()
	}
	return n
}

// Reset clears accumulated time and the frame timestamp.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}
