package cli

import (
	"context"

	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
)

func (c *CLI) registerAccount(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}

	var req healthsdk.RegisterRequest
	var err error
	if req.Name, err = c.ask("Name"); err != nil {
		return err
	}
	if req.Email, err = c.ask("Email"); err != nil {
		return err
	}
	if req.Gender, err = c.ask("Gender (male/female, optional)"); err != nil {
		return err
	}
	if req.BirthDate, err = c.ask("Birth date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if req.Password, err = c.newPassword("Password"); err != nil {
		return err
	}

	u, out, err := c.app.Session.Register(ctx, req)
	if err != nil {
		return err
	}
	c.printf("Welcome, %s! You are signed in.\n", u.Name)
	c.saved(out.Source, out.Warning)
	return nil
}

func (c *CLI) login(ctx context.Context, args []string) error {
	var email string
	switch len(args) {
	case 0:
		var err error
		if email, err = c.ask("Email"); err != nil {
			return err
		}
	case 1:
		email = args[0]
	default:
		return errUsage
	}

	pw, err := c.askSecret("Password")
	if err != nil {
		return err
	}

	u, out, err := c.app.Session.Login(ctx, email, pw)
	if err != nil {
		return err
	}
	c.printf("Signed in as %s (%s).\n", u.Name, u.Email)
	if out.Source == healthsdk.SourceLocal {
		c.printf("(offline sign-in: %s)\n", out.Warning)
	}
	return nil
}

func (c *CLI) logout(ctx context.Context, _ []string) error {
	if _, err := c.currentUser(); err != nil {
		return err
	}
	if err := c.app.Session.Logout(ctx); err != nil {
		return err
	}
	c.println("Signed out.")
	return nil
}

func (c *CLI) whoami(_ context.Context, _ []string) error {
	u, ok := c.app.Session.Current()
	if !ok {
		c.println("Not signed in.")
		return nil
	}
	c.printUser(u)
	return nil
}

func (c *CLI) printUser(u healthsdk.User) {
	age := "--"
	if u.Age != nil {
		age = itoa(*u.Age)
	}
	c.printf("%s <%s>\n", u.Name, u.Email)
	c.printf("  id:     %s\n", u.ID)
	c.printf("  gender: %s\n", orDash(u.Gender))
	c.printf("  born:   %s (age %s)\n", orDash(u.BirthDate), age)
	c.printf("  plan:   %s  role: %s\n", u.Plan, u.Role)
}

func (c *CLI) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.whoami(ctx, nil)
	}

	fields, err := parseFields(args, "name", "email", "gender", "birth", "age")
	if err != nil {
		return err
	}
	req := healthsdk.ProfileUpdateRequest{
		Name:      optional(fields, "name"),
		Email:     optional(fields, "email"),
		Gender:    optional(fields, "gender"),
		BirthDate: optional(fields, "birth"),
	}
	if raw, ok := fields["age"]; ok {
		age, err := parseInt("age", raw)
		if err != nil {
			return err
		}
		req.Age = &age
	}

	u, out, err := c.app.Session.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}
	c.println("Profile updated.")
	c.printUser(u)
	c.saved(out.Source, out.Warning)
	return nil
}

func (c *CLI) password(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return errUsage
	}
	if _, err := c.currentUser(); err != nil {
		return err
	}

	current, err := c.askSecret("Current password")
	if err != nil {
		return err
	}
	next, err := c.newPassword("New password")
	if err != nil {
		return err
	}

	out, err := c.app.Session.ChangePassword(ctx, current, next)
	if err != nil {
		return err
	}
	c.println("Password changed.")
	c.saved(out.Source, out.Warning)
	return nil
}
