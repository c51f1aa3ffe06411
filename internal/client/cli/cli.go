// Package cli is the interactive front-end of the healthmate client. It
// reads one command per line and drives the session, metric and admin
// services of an app.Application.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/aussiebroadwan/healthmate/internal/client/app"
	"github.com/aussiebroadwan/healthmate/internal/client/bus"
	"github.com/aussiebroadwan/healthmate/internal/client/flags"
	"github.com/aussiebroadwan/healthmate/pkg/healthsdk"
	"github.com/aussiebroadwan/healthmate/pkg/slogx"
	"golang.org/x/term"
)

// errUsage makes Exec print the command's usage line.
var errUsage = errors.New("usage")

type command struct {
	usage string
	help  string
	// flag is the feature flag that must be on for the command to run.
	flag  string
	label string
	run   func(ctx context.Context, args []string) error
}

type CLI struct {
	app *app.Application
	in  *bufio.Reader
	out io.Writer
	mu  sync.Mutex

	// ReadPassword reads a secret without echo. It reads from the terminal
	// when input is a TTY and falls back to the next input line otherwise.
	ReadPassword func() (string, error)

	commands map[string]command
	order    []string
}

func New(a *app.Application, in io.Reader, out io.Writer) *CLI {
	c := &CLI{app: a, in: bufio.NewReader(in), out: out}

	c.ReadPassword = c.readLine
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		c.ReadPassword = func() (string, error) {
			raw, err := term.ReadPassword(fd)
			c.println()
			return string(raw), err
		}
	}

	c.register()
	return c
}

// Run reads and executes commands until quit or end of input. Changes made
// by other processes are announced while it runs.
func (c *CLI) Run(ctx context.Context) error {
	cancel := c.app.Bus.Subscribe(c.announce)
	defer cancel()

	c.println("HealthMate client " + app.BuildVersion + " (type 'help' for commands)")
	for {
		if ctx.Err() != nil {
			return nil
		}
		c.printf("%s> ", c.status())

		line, err := c.in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if c.Exec(ctx, line) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			c.println()
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Exec runs a single command line and reports whether the user asked to
// quit.
func (c *CLI) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(fields[0])

	if name == "quit" || name == "exit" {
		c.println("Bye!")
		return true
	}

	cmd, ok := c.commands[name]
	if !ok {
		c.printf("Unknown command: %s (try 'help')\n", name)
		return false
	}

	if cmd.flag != "" && !c.app.Flags.Enabled(ctx, cmd.flag) {
		c.printf("%s is locked. An admin can enable it with 'flags set %s on'.\n", cmd.label, cmd.flag)
		return false
	}

	err := cmd.run(ctx, fields[1:])
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		c.printf("usage: %s\n", cmd.usage)
	default:
		slogx.Component(ctx, "cli").Debug("command failed", "command", name, "err", err)
		c.printf("error: %v\n", err)
	}
	return false
}

func (c *CLI) register() {
	c.commands = map[string]command{
		"help": {usage: "help", help: "list commands", run: c.help},

		"register": {usage: "register", help: "create an account", run: c.registerAccount},
		"login":    {usage: "login [email]", help: "sign in", run: c.login},
		"logout":   {usage: "logout", help: "sign out", run: c.logout},
		"whoami":   {usage: "whoami", help: "show the signed-in account", run: c.whoami},
		"profile":  {usage: "profile [name=.. email=.. gender=.. birth=YYYY-MM-DD age=..]", help: "show or edit your profile", run: c.profile},
		"password": {usage: "password", help: "change your password", run: c.password},

		"bmi":   {usage: "bmi <height-cm> <weight-kg> [age] [gender]", help: "record a BMI measurement", run: c.bmi},
		"bmr":   {usage: "bmr <height-cm> <weight-kg> <age> <male|female> [activity]", help: "calculate BMR and TDEE", flag: flags.BMR, label: "BMR & TDEE", run: c.bmr},
		"heart": {usage: "heart <age> [resting-bpm]", help: "calculate heart rate zones", flag: flags.Heart, label: "Heart rate", run: c.heart},
		"water": {usage: "water [summary | add <ml> | goal [ml]]", help: "track hydration", run: c.water},
		"logs":  {usage: "logs <bmi|bmr|heart|water>", help: "show recorded history", flag: flags.Dashboard, label: "The log dashboard", run: c.logs},

		"snapshot": {usage: "snapshot", help: "summarise your latest readings", run: c.showSnapshot},
		"tools":    {usage: "tools", help: "list health tools", run: c.tools},

		"flags":   {usage: "flags [set <name> <on|off>]", help: "show or change feature flags", run: c.featureFlags},
		"users":   {usage: "users", help: "list accounts (admin)", run: c.users},
		"refresh": {usage: "refresh", help: "reload accounts from the API (admin)", run: c.refresh},
		"user":    {usage: "user <plan|role|update|delete> <id> ...", help: "manage an account (admin)", run: c.user},
	}
	c.order = slices.Sorted(maps.Keys(c.commands))
}

func (c *CLI) help(_ context.Context, _ []string) error {
	for _, name := range c.order {
		cmd := c.commands[name]
		c.printf("  %-58s %s\n", cmd.usage, cmd.help)
	}
	c.printf("  %-58s %s\n", "quit", "leave")
	return nil
}

// announce reports changes other processes made to the signed-in user's
// data or to shared state.
func (c *CLI) announce(e bus.Event) {
	if !e.External {
		return
	}
	if e.OwnerID != "" {
		u, ok := c.app.Session.Current()
		if !ok || u.ID != e.OwnerID {
			return
		}
	}
	c.printf("\n[data updated: %s]\n", e.Topic)
}

func (c *CLI) status() string {
	u, ok := c.app.Session.Current()
	if !ok {
		return "healthmate (guest)"
	}
	return fmt.Sprintf("healthmate (%s)", u.Name)
}

// currentUser returns the signed-in identity or errSignedOut.
func (c *CLI) currentUser() (healthsdk.User, error) {
	u, ok := c.app.Session.Current()
	if !ok {
		return healthsdk.User{}, errSignedOut
	}
	return u, nil
}

func (c *CLI) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) println(args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, args...)
}

// saved notes when a write only reached the local store.
func (c *CLI) saved(src healthsdk.Source, warning string) {
	if src != healthsdk.SourceLocal {
		return
	}
	if warning == "" {
		c.println("(saved locally)")
		return
	}
	c.printf("(saved locally: %s)\n", warning)
}
