package indicios

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last keystroke and the search call
const DefaultDebounce = 300 * time.Millisecond

type debouncer struct {
	mu     sync.Mutex
	timers map[Catalogo]*time.Timer
}

func newDebouncer() *debouncer {
	return &debouncer{timers: make(map[Catalogo]*time.Timer)}
}

// schedule runs fn after delay unless schedule is called again for key first
func (d *debouncer) schedule(key Catalogo, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(delay, fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, t := range d.timers {
		t.Stop()
		delete(d.timers, k)
	}
}
