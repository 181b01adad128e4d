package browse

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window applied to search input
const DefaultDebounce = 500 * time.Millisecond

// Debouncer collapses a burst of values into the last one, emitted once no
// new value has arrived for the configured interval.
type Debouncer struct {
	interval time.Duration
	emit     func(string)

	mu         sync.Mutex
	timer      *time.Timer
	gen        uint64
	pending    string
	hasPending bool
	stopped    bool
}

// NewDebouncer creates a debouncer calling emit with each settled value.
// emit runs on a timer goroutine.
func NewDebouncer(interval time.Duration, emit func(string)) *Debouncer {
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Debouncer{
		interval: interval,
		emit:     emit,
	}
}

// Push records v and restarts the quiescence window. Any value still
// pending is superseded and will never be emitted.
func (d *Debouncer) Push(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.gen++
	d.pending = v
	d.hasPending = true
	if d.timer != nil {
		d.timer.Stop()
	}

	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() { d.fire(gen) })
}

// Flush emits the pending value immediately. It returns false when nothing
// was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()

	d.emit(v)
	return true
}

// Cancel drops the pending value without emitting it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.take()
}

// Pending returns the value waiting to settle, if any
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending, d.hasPending
}

// Stop cancels the pending value and disables further emissions
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.take()
	d.stopped = true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	// a newer Push, Flush or Cancel bumped gen after this timer was armed
	if gen != d.gen || !d.hasPending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()

	d.emit(v)
}

// take clears the pending slot and invalidates the armed timer. Callers hold mu.
func (d *Debouncer) take() string {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.pending
	d.pending = ""
	d.hasPending = false
	return v
}
