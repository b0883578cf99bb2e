package watch

import (
	"sort"
	"strings"
	"sync"
	"time"
)

const defaultDebounce = 200 * time.Millisecond

// Debouncer collects paths and hands them over in one sorted batch once no
// new path has arrived for the delay.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	queued map[string]struct{}
	onFire func(paths []string)
}

func NewDebouncer(delay time.Duration, onFire func(paths []string)) *Debouncer {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &Debouncer{
		delay:  delay,
		queued: map[string]struct{}{},
		onFire: onFire,
	}
}

func (d *Debouncer) Push(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queued[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop drops pending paths without firing.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.queued = map[string]struct{}{}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	queued := d.queued
	d.queued = map[string]struct{}{}
	d.timer = nil
	fn := d.onFire
	d.mu.Unlock()

	if fn == nil || len(queued) == 0 {
		return
	}
	paths := make([]string, 0, len(queued))
	for p := range queued {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	fn(paths)
}
