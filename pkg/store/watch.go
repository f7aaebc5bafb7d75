package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const throttleDelay = 100 * time.Millisecond

// Watch streams slot change events until ctx is cancelled. The channel is
// closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	// Atomic writes land in the base path by rename from the temp dir, so
	// only the base path is watched.
	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer closeWatcher()

		throttle := newEventThrottle(throttleDelay)
		defer throttle.Stop()
		send := nonBlockingSend(events)

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Unclassified failure: have the consumer refresh everything.
				for _, s := range Slots() {
					throttle.Enqueue(s, send)
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if slot, ok := p.slotForPath(evt.Name); ok {
					throttle.Enqueue(slot, send)
				}
			}
		}
	}()
	return events, nil
}

// nonBlockingSend drops events the consumer is not ready for; the next
// delivered event triggers the same refresh.
func nonBlockingSend(events chan<- Event) func(Event) {
	return func(ev Event) {
		select {
		case events <- ev:
		default:
		}
	}
}

// eventThrottle coalesces bursts of writes to a slot into one event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Slot]struct{}
	delay   time.Duration
	stopped bool
	// inflight counts armed timers; Stop waits for it so no send happens
	// after Stop returns.
	inflight sync.WaitGroup
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Slot]struct{}),
	}
}

func (t *eventThrottle) Enqueue(slot Slot, send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending[slot] = struct{}{}
	if t.timer == nil {
		t.inflight.Add(1)
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	defer t.inflight.Done()
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	pending := t.pending
	t.pending = make(map[Slot]struct{})
	t.timer = nil
	t.mu.Unlock()

	for _, slot := range Slots() {
		if _, ok := pending[slot]; ok {
			send(Event{Slot: slot})
		}
	}
}

// Stop drops pending events and waits for a flush already under way.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil && t.timer.Stop() {
		t.inflight.Done()
	}
	t.timer = nil
	t.mu.Unlock()
	t.inflight.Wait()
}
