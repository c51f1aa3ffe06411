package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	t.Run("joins bare words onto the previous value", func(t *testing.T) {
		got, err := parseFields([]string{"name=Lan", "Thi", "Nguyen", "gender=female"}, "name", "gender")
		require.NoError(t, err)
		require.Equal(t, map[string]string{"name": "Lan Thi Nguyen", "gender": "female"}, got)
	})

	t.Run("keys are case-insensitive", func(t *testing.T) {
		got, err := parseFields([]string{"EMAIL=a@b.c"}, "email")
		require.NoError(t, err)
		require.Equal(t, "a@b.c", got["email"])
	})

	t.Run("rejects unknown keys and leading bare words", func(t *testing.T) {
		_, err := parseFields([]string{"height=170"}, "name")
		require.ErrorContains(t, err, `unknown field "height"`)

		_, err = parseFields([]string{"Lan"}, "name")
		require.ErrorIs(t, err, errUsage)
	})

	t.Run("optional", func(t *testing.T) {
		m := map[string]string{"name": ""}
		require.NotNil(t, optional(m, "name"))
		require.Equal(t, "", *optional(m, "name"))
		require.Nil(t, optional(m, "email"))
	})
}

func TestParseSwitch(t *testing.T) {
	for _, s := range []string{"on", "TRUE", "yes", "1"} {
		on, err := parseSwitch(s)
		require.NoError(t, err)
		require.True(t, on, s)
	}
	for _, s := range []string{"off", "false", "No", "0"} {
		on, err := parseSwitch(s)
		require.NoError(t, err)
		require.False(t, on, s)
	}
	_, err := parseSwitch("maybe")
	require.Error(t, err)
}

func TestReadLine(t *testing.T) {
	c := &CLI{in: bufio.NewReader(strings.NewReader("first\r\nlast"))}

	line, err := c.readLine()
	require.NoError(t, err)
	require.Equal(t, "first", line)

	line, err = c.readLine()
	require.NoError(t, err)
	require.Equal(t, "last", line)

	_, err = c.readLine()
	require.Error(t, err)
}
