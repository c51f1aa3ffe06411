package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/healthmate/internal/client/session"
)

var errSignedOut = fmt.Errorf("%w; use 'login' or 'register'", session.ErrNotAuthenticated)

// readLine reads the next input line without its line ending. A final line
// without a newline is still returned.
func (c *CLI) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prints label and reads a trimmed answer.
func (c *CLI) ask(label string) (string, error) {
	c.printf("%s: ", label)
	line, err := c.readLine()
	return strings.TrimSpace(line), err
}

// askSecret prints label and reads a password without echo.
func (c *CLI) askSecret(label string) (string, error) {
	c.printf("%s: ", label)
	return c.ReadPassword()
}

// newPassword asks for a password twice.
func (c *CLI) newPassword(label string) (string, error) {
	pw, err := c.askSecret(label)
	if err != nil {
		return "", err
	}
	again, err := c.askSecret("Repeat " + strings.ToLower(label))
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}

// parseFields reads key=value arguments. A bare word continues the previous
// value, so "name=Lan Nguyen" needs no quoting. Keys outside allowed are
// rejected.
func parseFields(args []string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	last := ""
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if last == "" {
				return nil, errUsage
			}
			out[last] += " " + arg
			continue
		}
		key = strings.ToLower(key)
		if !slices.Contains(allowed, key) {
			return nil, fmt.Errorf("unknown field %q (want %s)", key, strings.Join(allowed, ", "))
		}
		out[key] = value
		last = key
	}
	return out, nil
}

// optional returns a pointer to m[key] when present.
func optional(m map[string]string, key string) *string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, s)
	}
	return v, nil
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", name, s)
	}
	return v, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
