package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophbank/internal/config"
	"github.com/dmitrijs2005/gophbank/internal/logging"
	"github.com/dmitrijs2005/gophbank/internal/repositories/accounts"
	"github.com/dmitrijs2005/gophbank/internal/store"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StorePath = filepath.Join(t.TempDir(), "Accounts.dat")
	c.FailureDelay = 0
	c.LockoutDelay = 0
	c.LogLevel = "error"
	return c
}

// stubPasswords feeds the given passwords to the menu in order.
func stubPasswords(t *testing.T, list ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(io.Writer, string) ([]byte, error) {
		if len(list) == 0 {
			return nil, io.EOF
		}
		pw := list[0]
		list = list[1:]
		return []byte(pw), nil
	}
}

// runScript runs one shell session over input and returns its output.
func runScript(t *testing.T, c *config.Config, input string) string {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(context.Background(), c, strings.NewReader(input), &out, io.Discard)
	require.NoError(t, err)
	defer app.Close()

	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func TestNewApp_StorePathIsDirectory(t *testing.T) {
	c := testConfig(t)
	c.StorePath = t.TempDir()

	_, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)
}

func TestNewApp_InvalidLogLevel(t *testing.T) {
	c := testConfig(t)
	c.LogLevel = "loud"

	_, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.Error(t, err)
}

func TestListAccounts(t *testing.T) {
	c := testConfig(t)
	stubPasswords(t, "pw", "pw")
	runScript(t, c, lines("2", "bob", "7"))
	runScript(t, c, lines("2", "alice", "7"))

	app, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.NoError(t, err)
	defer app.Close()

	var out bytes.Buffer
	require.NoError(t, app.ListAccounts(&out))
	require.Equal(t, "alice\nbob\n", out.String())
}

func TestConvert_FileToSQLite(t *testing.T) {
	c := testConfig(t)
	stubPasswords(t, "pw")
	runScript(t, c, lines("2", "alice", "2", "42.5", "7"))

	app, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.NoError(t, err)
	defer app.Close()

	target := filepath.Join(t.TempDir(), "accounts.db")
	require.NoError(t, app.Convert(context.Background(), store.BackendSQLite, target))

	st, err := store.Open(context.Background(), store.BackendSQLite, target, logging.NewNop())
	require.NoError(t, err)
	defer st.Close()

	repo, err := accounts.Load(context.Background(), st, logging.NewNop())
	require.NoError(t, err)
	acc, err := repo.Get("alice")
	require.NoError(t, err)
	require.Equal(t, "42.5", acc.Balance().String())
}

func TestConvert_UnknownBackend(t *testing.T) {
	c := testConfig(t)
	app, err := NewApp(context.Background(), c, strings.NewReader(""), io.Discard, io.Discard)
	require.NoError(t, err)
	defer app.Close()

	err = app.Convert(context.Background(), "tape", filepath.Join(t.TempDir(), "x"))
	require.True(t, errors.Is(err, store.ErrUnknownBackend))
}
