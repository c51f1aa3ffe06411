package http

import (
	"time"

	"github.com/aussiebroadwan/healthmate/internal/api/domain"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
)

func toUser(u domain.User, now time.Time) healthsdk.User {
	out := healthsdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Gender:    u.Gender,
		BirthDate: u.BirthDate,
		Plan:      healthsdk.Plan(u.Plan),
		Role:      healthsdk.Role(u.Role),
	}
	if age, ok := healthx.DeriveAge(u.AgeOverride, u.BirthDate, now); ok {
		out.Age = &age
	}
	return out
}

func toUsers(users []domain.User, now time.Time) []healthsdk.User {
	out := make([]healthsdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u, now))
	}
	return out
}

func toBMIEntry(l domain.BMILog, loc *time.Location) healthsdk.BMIEntry {
	return healthsdk.BMIEntry{
		ID:        l.ID,
		UserID:    l.UserID,
		BMI:       l.BMI,
		Height:    l.Height,
		Weight:    l.Weight,
		Age:       l.Age,
		Gender:    l.Gender,
		CreatedAt: l.CreatedAt,
		Date:      l.CreatedAt.In(loc).Format(healthx.DateLayout),
	}
}

func toBMREntry(l domain.BMRLog, loc *time.Location) healthsdk.BMREntry {
	e := healthsdk.BMREntry{
		ID:        l.ID,
		UserID:    l.UserID,
		BMR:       l.BMR,
		TDEE:      l.TDEE,
		Age:       l.Age,
		Height:    l.Height,
		Weight:    l.Weight,
		Gender:    l.Gender,
		Activity:  l.Activity,
		CreatedAt: l.CreatedAt,
		Date:      l.CreatedAt.In(loc).Format(healthx.DateLayout),
	}
	if level, err := healthx.LookupActivity(l.Activity); err == nil {
		e.ActivityLabel = level.Label
	}
	return e
}

func toHeartRateEntry(l domain.HeartRateLog, loc *time.Location) healthsdk.HeartRateEntry {
	z := healthx.ZonesForAge(l.Age)
	e := healthsdk.HeartRateEntry{
		ID:        l.ID,
		UserID:    l.UserID,
		Age:       l.Age,
		BPM:       l.RestingBPM,
		Max:       l.MaxBPM,
		Moderate:  z.Moderate(),
		Vigorous:  z.Vigorous(),
		Mode:      healthx.HeartRateMode,
		CreatedAt: l.CreatedAt,
		Date:      l.CreatedAt.In(loc).Format(healthx.DateLayout),
	}
	if l.RestingBPM > 0 {
		e.Zone = healthx.RestingZone(l.RestingBPM)
	}
	return e
}

func toWaterEntry(l domain.WaterLog, loc *time.Location) healthsdk.WaterEntry {
	local := l.CreatedAt.In(loc)
	return healthsdk.WaterEntry{
		ID:        l.ID,
		UserID:    l.UserID,
		Amount:    l.Amount,
		Time:      local.Format("15:04"),
		Date:      local.Format(healthx.DateLayout),
		CreatedAt: l.CreatedAt,
	}
}

func mapAll[D, E any](in []D, loc *time.Location, f func(D, *time.Location) E) []E {
	out := make([]E, 0, len(in))
	for _, v := range in {
		out = append(out, f(v, loc))
	}
	return out
}
