// Package events turns store writes into push notifications and provides the
// observation helpers built on them.
package events

import (
	"sync"

	"github.com/google/uuid"
)

type subscriber struct {
	tables map[string]struct{}
	signal chan struct{}
}

// Bus fans table change notifications out to subscribers. Signals coalesce:
// a subscriber that has not yet drained its channel sees one pending signal
// no matter how many writes happened in between.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]*subscriber)}
}

// Subscribe registers interest in the given tables. An empty table list
// matches every table. The returned function removes the subscription.
func (bus *Bus) Subscribe(tables ...string) (<-chan struct{}, func()) {
	entry := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		signal: make(chan struct{}, 1),
	}
	for _, table := range tables {
		entry.tables[table] = struct{}{}
	}

	id := uuid.NewString()
	bus.mu.Lock()
	bus.subscribers[id] = entry
	bus.mu.Unlock()

	var once sync.Once
	return entry.signal, func() {
		once.Do(func() {
			bus.mu.Lock()
			delete(bus.subscribers, id)
			bus.mu.Unlock()
		})
	}
}

func (bus *Bus) Publish(table string) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, entry := range bus.subscribers {
		if len(entry.tables) > 0 {
			if _, ok := entry.tables[table]; !ok {
				continue
			}
		}
		select {
		case entry.signal <- struct{}{}:
		default:
		}
	}
}

func (bus *Bus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subscribers)
}
