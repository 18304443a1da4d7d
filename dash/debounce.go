package dash

import (
	"sync"
	"time"
)

// ResizeDelay coalesces resize bursts into a single re-render.
const ResizeDelay = 250 * time.Millisecond

// Debouncer runs a callback once the events stop arriving for the configured
// delay. A pending callback is replaced, not queued, on every trigger.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = ResizeDelay
	}
	return &Debouncer{
		delay: delay,
	}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
