package cli

import (
	"context"

	"github.com/aussiebroadwan/healthmate/internal/client/flags"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
)

func (c *CLI) featureFlags(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		all, err := c.app.Flags.All(ctx)
		if err != nil {
			return err
		}
		for _, name := range flags.Names() {
			c.printf("  %-10s %s\n", name, onOff(all[name]))
		}
		return nil

	case len(args) == 3 && args[0] == "set":
		on, err := parseSwitch(args[2])
		if err != nil {
			return err
		}
		var actor *healthsdk.User
		if u, ok := c.app.Session.Current(); ok {
			actor = &u
		}
		if _, err := c.app.Flags.Set(ctx, actor, args[1], on); err != nil {
			return err
		}
		c.printf("Flag %s is now %s.\n", args[1], onOff(on))
		return nil
	}
	return errUsage
}

func (c *CLI) users(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	list, err := c.app.Session.Users(ctx)
	if err != nil {
		return err
	}
	c.printUsers(list)
	return nil
}

func (c *CLI) refresh(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	list, out, err := c.app.Session.RefreshUsers(ctx)
	if err != nil {
		return err
	}
	c.printUsers(list)
	if out.Source == healthsdk.SourceLocal {
		c.printf("(showing local accounts: %s)\n", out.Warning)
	}
	return nil
}

func (c *CLI) printUsers(list []healthsdk.User) {
	for _, u := range list {
		c.printf("  %-28s %-24s %-28s %-4s %s\n", u.ID, u.Name, u.Email, u.Plan, u.Role)
	}
	c.printf("%d account(s)\n", len(list))
}

func (c *CLI) user(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	action, id, rest := args[0], args[1], args[2:]

	switch action {
	case "plan":
		if len(rest) != 1 {
			return errUsage
		}
		u, out, err := c.app.Session.SetUserPlan(ctx, id, healthsdk.Plan(rest[0]))
		if err != nil {
			return err
		}
		c.printf("%s is now on the %s plan.\n", u.Email, u.Plan)
		c.saved(out.Source, out.Warning)

	case "role":
		if len(rest) != 1 {
			return errUsage
		}
		role := healthsdk.Role(rest[0])
		u, out, err := c.app.Session.UpdateUserAdmin(ctx, id, healthsdk.AdminUserUpdateRequest{Role: &role})
		if err != nil {
			return err
		}
		c.printf("%s now has the %s role.\n", u.Email, u.Role)
		c.saved(out.Source, out.Warning)

	case "update":
		fields, err := parseFields(rest, "name", "email", "gender", "birth", "plan", "role")
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return errUsage
		}
		req := healthsdk.AdminUserUpdateRequest{
			Name:      optional(fields, "name"),
			Email:     optional(fields, "email"),
			Gender:    optional(fields, "gender"),
			BirthDate: optional(fields, "birth"),
		}
		if v, ok := fields["plan"]; ok {
			plan := healthsdk.Plan(v)
			req.Plan = &plan
		}
		if v, ok := fields["role"]; ok {
			role := healthsdk.Role(v)
			req.Role = &role
		}
		u, out, err := c.app.Session.UpdateUserAdmin(ctx, id, req)
		if err != nil {
			return err
		}
		c.printf("Updated %s.\n", u.Email)
		c.saved(out.Source, out.Warning)

	case "delete":
		if len(rest) != 0 {
			return errUsage
		}
		out, err := c.app.Session.DeleteUser(ctx, id)
		if err != nil {
			return err
		}
		c.printf("Deleted %s.\n", id)
		if out.Source == healthsdk.SourceLocal {
			c.printf("(removed from this device only: %s)\n", out.Warning)
		}

	default:
		return errUsage
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
