package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDatabase(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("PRICE_POLICY", "")
	t.Setenv("KAFKA_BROKERS", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"reset-password", "check-db", "seed"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSeedAndCheckDB(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded")

	out, err = run(t, "--format", "json", "check-db")
	require.NoError(t, err)

	var report struct {
		Tables               map[string]int64 `json:"tables"`
		UsersWithoutPassword []string         `json:"users_without_password"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, int64(3), report.Tables["items"])
	assert.Equal(t, int64(1), report.Tables["users"])
	assert.Empty(t, report.UsersWithoutPassword)

	out, err = run(t, "check-db")
	require.NoError(t, err)
	assert.Contains(t, out, "all users have a password")
}

func TestResetPassword(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, "seed")
	require.NoError(t, err)

	out, err := run(t, "reset-password", "admin", "n3w-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "admin")

	_, err = run(t, "reset-password", "nobody", "x")
	assert.Error(t, err)

	_, err = run(t, "reset-password", "admin")
	assert.Error(t, err)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "yaml", "seed")
	assert.Error(t, err)
}
