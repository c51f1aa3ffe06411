// Package flags holds the feature switches that gate client navigation.
// Flags are global, readable by anyone and writable only by admins.
package flags

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/localstore"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
)

const (
	Dashboard = "dashboard"
	BMR       = "bmr"
	Heart     = "heart"
)

var (
	ErrForbidden   = errors.New("flags: admin role required")
	ErrUnknownFlag = errors.New("flags: unknown flag")
)

// Defaults lists every known flag with its initial value.
var Defaults = map[string]bool{Dashboard: false, BMR: false, Heart: false}

type Service struct {
	Store localstore.Store
	Bus   *bus.Bus
}

// All returns the defaults overlaid with the stored values. A corrupt
// stored map yields the defaults.
func (s *Service) All(ctx context.Context) (map[string]bool, error) {
	out := maps.Clone(Defaults)

	var stored map[string]bool
	err := localstore.GetJSON(ctx, s.Store, localstore.KeyFeatureFlags, &stored)
	switch {
	case errors.Is(err, localstore.ErrNotFound):
		return out, nil
	case err != nil:
		return nil, err
	}
	maps.Copy(out, stored)
	return out, nil
}

// Enabled reports a single flag. Unknown flags are off.
func (s *Service) Enabled(ctx context.Context, name string) bool {
	all, err := s.All(ctx)
	if err != nil {
		slogx.Component(ctx, "flags").Warn("feature flags unreadable", "err", err)
		return false
	}
	return all[name]
}

// Set changes one flag on behalf of actor, who must be an admin.
func (s *Service) Set(ctx context.Context, actor *healthsdk.User, name string, on bool) (map[string]bool, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, ok := Defaults[name]; !ok {
		return nil, ErrUnknownFlag
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	all[name] = on
	if err := localstore.SetJSON(ctx, s.Store, localstore.KeyFeatureFlags, all); err != nil {
		return nil, err
	}

	slogx.Component(ctx, "flags").Info("feature flag changed", "flag", name, "on", on, "actor_id", actor.ID)
	if s.Bus != nil {
		s.Bus.Publish(bus.Event{Topic: bus.TopicFlags, Key: localstore.KeyFeatureFlags})
	}
	return all, nil
}

// Names lists the known flags, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(Defaults))
}
