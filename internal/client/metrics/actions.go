package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
)

// ActionCap bounds the stored recent-action list per owner.
const ActionCap = 20

// Action is one line of the recent-activity feed.
type Action struct {
	Name  string    `json:"name"`
	Note  string    `json:"note"`
	Delta string    `json:"delta"`
	At    time.Time `json:"at,omitzero"`
}

// DefaultSuggestions are shown while an owner has no recorded actions.
var DefaultSuggestions = []Action{
	{Name: "Drink water", Note: "Have 300ml of water after waking up.", Delta: "+300ml"},
	{Name: "Move", Note: "Take a brisk 10 minute walk after lunch.", Delta: "+10 min"},
	{Name: "Stretch", Note: "Loosen shoulders and neck for 2 minutes when sitting long.", Delta: "+2 min"},
}

// ActionLog stores the newest-first action feed for each owner.
type ActionLog struct {
	Store localstore.Store
	Bus   *bus.Bus
	Now   func() time.Time
}

// Append records a at the head of the owner's feed and publishes
// TopicActions.
func (l *ActionLog) Append(ctx context.Context, ownerID string, a Action) error {
	if a.At.IsZero() {
		a.At = time.Now()
		if l.Now != nil {
			a.At = l.Now()
		}
	}

	list, err := l.List(ctx, ownerID)
	if err != nil {
		return err
	}
	list = append([]Action{a}, list...)
	if len(list) > ActionCap {
		list = list[:ActionCap]
	}

	key := localstore.OwnerKey(localstore.PrefixActionLogs, ownerID)
	if err := localstore.SetJSON(ctx, l.Store, key, list); err != nil {
		return err
	}
	if l.Bus != nil {
		l.Bus.Publish(bus.Event{Topic: bus.TopicActions, OwnerID: ownerID, Key: key})
	}
	return nil
}

// List returns the owner's feed, newest first.
func (l *ActionLog) List(ctx context.Context, ownerID string) ([]Action, error) {
	var list []Action
	err := localstore.GetJSON(ctx, l.Store, localstore.OwnerKey(localstore.PrefixActionLogs, ownerID), &list)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	return list, err
}
