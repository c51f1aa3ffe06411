// Package idx mints the ULIDs HealthMate uses for users, metric entries and
// request ids. Ids minted on one process sort by creation time, so the
// server's newest-first ordering and the client's offline entries agree.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in its canonical 26 character form.
type ID string

func (id ID) String() string { return string(id) }

// Time returns the millisecond timestamp embedded in id. Ids that are not
// ULIDs, such as the seeded "seed-lan", report the zero time.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}

// Valid reports whether id is a well formed ULID.
func (id ID) Valid() bool {
	_, err := ulid.ParseStrict(string(id))
	return err == nil
}

var (
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
)

// New mints an id for the current instant.
func New() ID { return NewAt(time.Now()) }

// NewAt mints an id stamped with t. Within one millisecond the random part
// increases monotonically, so ids minted in a burst keep their order.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	if entropy == nil {
		entropy = ulid.Monotonic(rand.Reader, 0)
	}
	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String())
}
