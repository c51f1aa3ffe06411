package cli

import (
	"context"
	"strconv"

	"github.com/aussiebroadwan/healthmate/internal/client/metrics"
	"github.com/aussiebroadwan/healthmate/internal/client/snapshot"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/healthx"
)

func (c *CLI) bmi(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 4 {
		return errUsage
	}
	u, err := c.currentUser()
	if err != nil {
		return err
	}

	var req healthsdk.BMIRequest
	if req.Height, err = parseFloat("height", args[0]); err != nil {
		return err
	}
	if req.Weight, err = parseFloat("weight", args[1]); err != nil {
		return err
	}
	if len(args) > 2 {
		if req.Age, err = parseInt("age", args[2]); err != nil {
			return err
		}
	}
	if len(args) > 3 {
		req.Gender = args[3]
	}

	out, err := c.app.Metrics.BMI.Record(ctx, u.ID, req)
	if err != nil {
		return err
	}
	band := healthx.ClassifyBMI(out.Latest.BMI)
	c.printf("BMI %.1f: %s\n", out.Latest.BMI, band.Label)
	c.saved(out.Source, out.Warning)
	return nil
}

func (c *CLI) bmr(ctx context.Context, args []string) error {
	if len(args) < 4 || len(args) > 5 {
		return errUsage
	}
	u, err := c.currentUser()
	if err != nil {
		return err
	}

	req := healthsdk.BMRRequest{Gender: args[3], Activity: healthx.ActivityLevels[0].Factor}
	if req.Height, err = parseFloat("height", args[0]); err != nil {
		return err
	}
	if req.Weight, err = parseFloat("weight", args[1]); err != nil {
		return err
	}
	if req.Age, err = parseInt("age", args[2]); err != nil {
		return err
	}
	if len(args) > 4 {
		if req.Activity, err = parseFloat("activity", args[4]); err != nil {
			return err
		}
	}

	out, err := c.app.Metrics.BMR.Record(ctx, u.ID, req)
	if err != nil {
		return err
	}
	e := out.Latest
	c.printf("BMR %d kcal, TDEE %d kcal (%s)\n", e.BMR, e.TDEE, e.ActivityLabel)
	c.saved(out.Source, out.Warning)
	return nil
}

func (c *CLI) heart(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	u, err := c.currentUser()
	if err != nil {
		return err
	}

	var req healthsdk.HeartRateRequest
	if req.Age, err = parseInt("age", args[0]); err != nil {
		return err
	}
	if len(args) > 1 {
		if req.RestingHeartRate, err = parseInt("resting heart rate", args[1]); err != nil {
			return err
		}
	}

	out, err := c.app.Metrics.HeartRate.Record(ctx, u.ID, req)
	if err != nil {
		return err
	}
	e := out.Latest
	c.printf("Max %d bpm. Moderate %s, vigorous %s.\n", e.Max, e.Moderate, e.Vigorous)
	if e.Zone != "" {
		c.printf("Resting %d bpm: %s\n", e.BPM, e.Zone)
	}
	c.saved(out.Source, out.Warning)
	return nil
}

func (c *CLI) water(ctx context.Context, args []string) error {
	u, err := c.currentUser()
	if err != nil {
		return err
	}
	tracker := c.app.Metrics.Water

	sub := "summary"
	if len(args) > 0 {
		sub = args[0]
	}

	switch {
	case sub == "summary" && len(args) <= 1:
		s, err := tracker.Summary(ctx, u.ID)
		if err != nil {
			return err
		}
		c.printWater(s)
		return nil

	case sub == "add" && len(args) == 2:
		amount, err := parseInt("amount", args[1])
		if err != nil {
			return err
		}
		out, err := tracker.Add(ctx, u.ID, amount)
		if err != nil {
			return err
		}
		c.printf("Logged %d ml at %s.\n", out.Latest.Amount, out.Latest.Time)
		c.saved(out.Source, out.Warning)
		return nil

	case sub == "goal" && len(args) == 1:
		goal, err := tracker.Goal(ctx, u.ID)
		if err != nil {
			return err
		}
		c.printf("Daily goal: %d ml\n", goal)
		return nil

	case sub == "goal" && len(args) == 2:
		goal, err := parseInt("goal", args[1])
		if err != nil {
			return err
		}
		out, err := tracker.SetGoal(ctx, u.ID, goal)
		if err != nil {
			return err
		}
		c.printf("Daily goal set to %d ml.\n", out.Latest)
		c.saved(out.Source, out.Warning)
		return nil
	}
	return errUsage
}

func (c *CLI) printWater(s metrics.WaterSummary) {
	c.printf("Today %d / %d ml (%d%%, %s)\n", s.Totals.Day, s.Goal, s.Progress, s.Tone)
	c.printf("This week %d ml, this month %d ml\n", s.Totals.Week, s.Totals.Month)
	for _, e := range s.Logs[:min(len(s.Logs), 5)] {
		c.printf("  %s %s  +%d ml\n", e.Date, e.Time, e.Amount)
	}
	if s.Source == healthsdk.SourceLocal && s.Warning != "" {
		c.printf("(offline: %s)\n", s.Warning)
	}
}

func (c *CLI) logs(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	u, err := c.currentUser()
	if err != nil {
		return err
	}

	var (
		lines   []string
		source  healthsdk.Source
		warning string
	)
	switch args[0] {
	case "bmi":
		out, err := c.app.Metrics.BMI.Readings(ctx, u.ID)
		if err != nil {
			return err
		}
		for _, e := range out.Entries {
			lines = append(lines, e.Date+"  BMI "+strconv.FormatFloat(e.BMI, 'f', 1, 64)+"  "+healthx.ClassifyBMI(e.BMI).Label)
		}
		source, warning = out.Source, out.Warning
	case "bmr":
		out, err := c.app.Metrics.BMR.Readings(ctx, u.ID)
		if err != nil {
			return err
		}
		for _, e := range out.Entries {
			lines = append(lines, e.Date+"  BMR "+itoa(e.BMR)+" kcal  TDEE "+itoa(e.TDEE)+" kcal")
		}
		source, warning = out.Source, out.Warning
	case "heart":
		out, err := c.app.Metrics.HeartRate.Readings(ctx, u.ID)
		if err != nil {
			return err
		}
		for _, e := range out.Entries {
			lines = append(lines, e.Date+"  max "+itoa(e.Max)+" bpm  moderate "+e.Moderate+"  vigorous "+e.Vigorous)
		}
		source, warning = out.Source, out.Warning
	case "water":
		out, err := c.app.Metrics.Water.Log.Readings(ctx, u.ID)
		if err != nil {
			return err
		}
		for _, e := range out.Entries {
			lines = append(lines, e.Date+" "+e.Time+"  +"+itoa(e.Amount)+" ml")
		}
		source, warning = out.Source, out.Warning
	default:
		return errUsage
	}

	if len(lines) == 0 {
		c.println(snapshot.NoData)
	}
	for _, l := range lines {
		c.println("  " + l)
	}
	if source == healthsdk.SourceLocal && warning != "" {
		c.printf("(offline: %s)\n", warning)
	}
	return nil
}

func (c *CLI) showSnapshot(ctx context.Context, _ []string) error {
	snap := snapshot.Empty()
	if u, ok := c.app.Session.Current(); ok {
		snap = c.app.Snapshot.Build(ctx, u.ID)
	}

	bmi := snap.BMI.Value
	if snap.BMI.HasData {
		bmi += " (" + snap.BMI.Label + ")"
	} else {
		bmi += "  " + snap.BMI.Label
	}
	c.printf("BMI         %s\n", bmi)
	c.printf("BMR         %s  %s\n", snap.BMR.Value, snap.BMR.Note)
	c.printf("Heart rate  %s  %s\n", snap.HeartRate.Value, snap.HeartRate.Note)
	c.printf("Water       %s  %s\n", snap.Water.Value, snap.Water.Note)
	c.printf("Status      %s  %s\n", snap.Status.Value, snap.Status.Note)

	c.println("Recent:")
	for _, a := range snap.Actions {
		delta := ""
		if a.Delta != "" {
			delta = " [" + a.Delta + "]"
		}
		c.printf("  %s%s: %s\n", a.Name, delta, a.Note)
	}
	return nil
}

func (c *CLI) tools(ctx context.Context, _ []string) error {
	list := healthsdk.DefaultTools
	if resp, res := c.app.Gateway.Tools(ctx); res.OK && len(resp.Tools) > 0 {
		list = resp.Tools
	}
	for _, t := range list {
		c.printf("  %-20s [%s] %s\n", t.Title, t.Badge, t.Description)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func orDash(s string) string {
	if s == "" {
		return snapshot.Placeholder
	}
	return s
}
