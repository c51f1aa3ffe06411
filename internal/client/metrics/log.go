// Package metrics records health readings. Each domain is a Log that writes
// to the API when it can and to the local store when it cannot, always
// leaving a capped newest-first list in the local store.
package metrics

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

// Outcome is the list after a write or read, newest first.
type Outcome[E any] struct {
	Entries []E
	// Latest is the entry just written. It is zero for reads.
	Latest  E
	Source  healthsdk.Source
	Warning string
}

// Log reconciles one metric domain. R is the reading a caller submits, E
// the stored entry.
type Log[R, E any] struct {
	Name      string
	Topic     bus.Topic
	KeyPrefix string
	Cap       int

	// Validate rejects out of range readings before any request is made.
	Validate func(R) error
	// Compute builds the entry the local path stores.
	Compute func(ownerID string, r R, at time.Time) E
	// Stamp returns the recording time used for ordering.
	Stamp func(E) time.Time
	// Describe renders the entry for the recent-action feed.
	Describe func(E) Action

	RecordRemote func(ctx context.Context, r R) (*E, []E, healthsdk.Result)
	ListRemote   func(ctx context.Context) ([]E, healthsdk.Result)

	Store   localstore.Store
	Bus     *bus.Bus
	Actions *ActionLog
	Now     func() time.Time
}

func (l *Log[R, E]) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Log[R, E]) key(ownerID string) string {
	return localstore.OwnerKey(l.KeyPrefix, ownerID)
}

// Record validates r, writes it and returns the resulting list. Only
// validation and storage failures are errors; an unavailable API is
// reported through Outcome.Source.
func (l *Log[R, E]) Record(ctx context.Context, ownerID string, r R) (Outcome[E], error) {
	if err := l.Validate(r); err != nil {
		slogx.FromContext(ctx).Debug("reading rejected", "metric", l.Name, "err", err)
		return Outcome[E]{}, err
	}

	var out Outcome[E]
	latest, list, res := l.RecordRemote(ctx, r)
	if res.OK {
		out = Outcome[E]{Entries: l.order(list), Source: healthsdk.SourceRemote}
		switch {
		case latest != nil:
			out.Latest = *latest
		case len(out.Entries) > 0:
			out.Latest = out.Entries[0]
		}
	} else {
		slogx.FromContext(ctx).Warn("reading saved locally", "metric", l.Name, "status", res.Status, "err", res.Error)

		cached, err := l.Cached(ctx, ownerID)
		if err != nil {
			return Outcome[E]{}, err
		}
		entry := l.Compute(ownerID, r, l.now())
		out = Outcome[E]{
			Entries: l.order(append([]E{entry}, cached...)),
			Latest:  entry,
			Source:  healthsdk.SourceLocal,
			Warning: res.Error,
		}
	}

	if err := localstore.SetJSON(ctx, l.Store, l.key(ownerID), out.Entries); err != nil {
		return Outcome[E]{}, err
	}
	if l.Actions != nil && l.Describe != nil {
		if err := l.Actions.Append(ctx, ownerID, l.Describe(out.Latest)); err != nil {
			return Outcome[E]{}, err
		}
	}
	l.publish(ownerID)
	return out, nil
}

// Readings returns the owner's list from the API, refreshing the local copy,
// or the local copy alone when the API is unavailable. Reads never publish.
func (l *Log[R, E]) Readings(ctx context.Context, ownerID string) (Outcome[E], error) {
	list, res := l.ListRemote(ctx)
	if res.OK {
		entries := l.order(list)
		if err := localstore.SetJSON(ctx, l.Store, l.key(ownerID), entries); err != nil {
			return Outcome[E]{}, err
		}
		return Outcome[E]{Entries: entries, Source: healthsdk.SourceRemote}, nil
	}

	slogx.FromContext(ctx).Debug("reading from local cache", "metric", l.Name, "status", res.Status, "err", res.Error)
	cached, err := l.Cached(ctx, ownerID)
	if err != nil {
		return Outcome[E]{}, err
	}
	return Outcome[E]{Entries: cached, Source: healthsdk.SourceLocal, Warning: res.Error}, nil
}

// Cached returns the locally stored list without contacting the API.
func (l *Log[R, E]) Cached(ctx context.Context, ownerID string) ([]E, error) {
	var list []E
	err := localstore.GetJSON(ctx, l.Store, l.key(ownerID), &list)
	if errors.Is(err, localstore.ErrNotFound) {
		return []E{}, nil
	}
	if err != nil {
		return nil, err
	}
	return list, nil
}

// order sorts newest first, keeping the given order for equal stamps, and
// applies the cap.
func (l *Log[R, E]) order(list []E) []E {
	out := slices.Clone(list)
	if out == nil {
		out = []E{}
	}
	if l.Stamp != nil {
		slices.SortStableFunc(out, func(a, b E) int {
			return l.Stamp(b).Compare(l.Stamp(a))
		})
	}
	if l.Cap > 0 && len(out) > l.Cap {
		out = out[:l.Cap]
	}
	return out
}

func (l *Log[R, E]) publish(ownerID string) {
	if l.Bus != nil {
		l.Bus.Publish(bus.Event{Topic: l.Topic, OwnerID: ownerID, Key: l.key(ownerID)})
	}
}
