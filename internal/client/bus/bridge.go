package bus

import (
	"context"

	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
)

var globalTopics = map[string]Topic{
	localstore.KeySession:      TopicSession,
	localstore.KeyAPIToken:     TopicSession,
	localstore.KeyUsers:        TopicUsers,
	localstore.KeyFeatureFlags: TopicFlags,
}

var ownerTopics = map[string]Topic{
	localstore.PrefixBMILogs:    TopicBMI,
	localstore.PrefixBMRLogs:    TopicBMR,
	localstore.PrefixHRLogs:     TopicHeartRate,
	localstore.PrefixWaterLogs:  TopicWater,
	localstore.PrefixWaterGoal:  TopicWater,
	localstore.PrefixActionLogs: TopicActions,
}

// TopicForKey maps a local store key to its topic and owner.
func TopicForKey(key string) (topic Topic, ownerID string, ok bool) {
	if t, found := globalTopics[key]; found {
		return t, "", true
	}
	if prefix, owner, found := localstore.SplitOwnerKey(key); found {
		return ownerTopics[prefix], owner, true
	}
	return "", "", false
}

// Bridge republishes changes that other processes make to s as External
// events. It returns once watching has started; the bridge stops when ctx
// is done. Unknown keys are ignored.
func (b *Bus) Bridge(ctx context.Context, s localstore.Store) error {
	changes, err := s.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for c := range changes {
			topic, owner, ok := TopicForKey(c.Key)
			if !ok {
				continue
			}
			b.Publish(Event{Topic: topic, OwnerID: owner, Key: c.Key, External: true})
		}
	}()
	return nil
}
