package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunREPL_DispatchesAndQuits(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("help\n\n  \nverify tok\nquit\nadmin\n"))
	var out bytes.Buffer
	var got [][]string

	runREPL(context.Background(), in, &out, func() string { return "" }, func(args []string) {
		got = append(got, args)
	})

	assert.Equal(t, [][]string{{"help"}, {"verify", "tok"}}, got)
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("health"))
	var got [][]string

	runREPL(context.Background(), in, &bytes.Buffer{}, func() string { return "" }, func(args []string) {
		got = append(got, args)
	})
	assert.Equal(t, [][]string{{"health"}}, got)
}

func TestRunREPL_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	runREPL(ctx, bufio.NewReader(strings.NewReader("help\n")), &bytes.Buffer{}, func() string { return "" }, func([]string) {
		called = true
	})
	assert.False(t, called)
}

func TestShell_LoginPromptsReadFromSameInput(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	a, out := newTestApp(t, api)
	a.reader = bufio.NewReader(strings.NewReader("login\nbob\nadmin\nexit\n"))

	origGP := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { getPassword = origGP })

	require.Equal(t, ExitOK, a.Run(context.Background(), nil))

	assert.Equal(t, []string{"login", "admin"}, api.calls)
	assert.Equal(t, "bob", api.loginUser)
	assert.Equal(t, "tok", api.lastToken)
	assert.Contains(t, out.String(), "gophauth (logged in) > ")
}
