// Package bus fans out "data changed" notifications to the parts of the
// client that render or cache domain data. Events are keyed by topic so a
// subscriber only hears about the domains it shows.
package bus

import (
	"slices"
	"sync"
)

type Topic string

const (
	TopicSession   Topic = "session"
	TopicUsers     Topic = "users"
	TopicFlags     Topic = "flags"
	TopicBMI       Topic = "bmi"
	TopicBMR       Topic = "bmr"
	TopicHeartRate Topic = "heart_rate"
	TopicWater     Topic = "water"
	TopicActions   Topic = "actions"
)

// AllTopics lists every topic in a stable order.
var AllTopics = []Topic{
	TopicSession, TopicUsers, TopicFlags,
	TopicBMI, TopicBMR, TopicHeartRate, TopicWater, TopicActions,
}

// Event says that data under Topic changed. OwnerID is set for per-user
// data. External marks changes made by another process.
type Event struct {
	Topic    Topic
	OwnerID  string
	Key      string
	External bool
}

type Handler func(Event)

type subscription struct {
	id      uint64
	topics  []Topic // nil means every topic
	handler Handler
}

func (s subscription) wants(t Topic) bool {
	return s.topics == nil || slices.Contains(s.topics, t)
}

// Bus is safe for concurrent use. The zero value is ready.
type Bus struct {
	mu   sync.RWMutex
	next uint64
	subs []subscription
}

func New() *Bus { return &Bus{} }

// Subscribe registers h for the given topics, or for all topics when none
// are given. The returned func removes the subscription and may be called
// more than once.
func (b *Bus) Subscribe(h Handler, topics ...Topic) (cancel func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	sub := subscription{id: id, handler: h}
	if len(topics) > 0 {
		sub.topics = slices.Clone(topics)
	}
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
			b.mu.Unlock()
		})
	}
}

// Publish calls every matching handler synchronously, in subscription
// order. Callers publish only after the data is persisted, so handlers that
// read the store observe the write. Handlers may subscribe or cancel.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if s.wants(e.Topic) {
			s.handler(e)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
