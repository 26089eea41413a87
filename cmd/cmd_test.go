package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// resetFlags restores every flag to its default; cobra keeps parsed
// values between Execute calls.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with args against an isolated data dir.
func run(t *testing.T, db string, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("CYBERGUARD_BCRYPT_COST", "4")
	t.Chdir(dir)
	return filepath.Join(dir, "cli.db")
}

func TestSignupWhoamiLogout(t *testing.T) {
	db := setup(t)

	out, err := run(t, db, "", "signup", "--email", "ada@example.com", "--password", "Secur3Pass", "--name", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ada Lovelace")

	out, err = run(t, db, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")

	out, err = run(t, db, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	out, err = run(t, db, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}

func TestLoginPromptsAndReportsCodes(t *testing.T) {
	db := setup(t)
	_, err := run(t, db, "", "signup", "--email", "ada@example.com", "--password", "Secur3Pass", "--name", "Ada")
	require.NoError(t, err)
	_, err = run(t, db, "", "logout")
	require.NoError(t, err)

	_, err = run(t, db, "ada@example.com\nwrong\n", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth/wrong-password")

	out, err := run(t, db, "ada@example.com\nSecur3Pass\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ada")

	_, err = run(t, db, "", "login", "--google")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth/operation-not-allowed")
}

func TestProgressCommandsRequireSignIn(t *testing.T) {
	db := setup(t)
	for _, args := range [][]string{{"stats"}, {"history"}, {"section", "complete", "laws"}, {"reset", "--yes"}} {
		_, err := run(t, db, "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not signed in")
	}
}

func TestSectionStatsAndExport(t *testing.T) {
	db := setup(t)
	_, err := run(t, db, "", "signup", "--email", "ada@example.com", "--password", "Secur3Pass", "--name", "Ada")
	require.NoError(t, err)

	out, err := run(t, db, "", "section", "complete", "laws")
	require.NoError(t, err)
	assert.Contains(t, out, "(1/3)")

	out, err = run(t, db, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Sections completed:    1/3")
	assert.Contains(t, out, "Start with basic phishing detection simulation")

	out, err = run(t, db, "", "simulations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "phishing-email")

	path := filepath.Join(filepath.Dir(db), "progress.xlsx")
	_, err = run(t, db, "", "export", path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

func TestResetNeedsConfirmation(t *testing.T) {
	db := setup(t)
	_, err := run(t, db, "", "signup", "--email", "ada@example.com", "--password", "Secur3Pass", "--name", "Ada")
	require.NoError(t, err)

	_, err = run(t, db, "", "reset")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := run(t, db, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "has been reset")
}

func TestVersionPrefersLdflags(t *testing.T) {
	db := setup(t)
	old := version
	version = "v1.2.3"
	t.Cleanup(func() { version = old })

	out, err := run(t, db, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cyberguard v1.2.3 ("), out)
}

func TestStartupFailureIsLogged(t *testing.T) {
	db := setup(t)
	logPath := filepath.Join(filepath.Dir(db), "cyberguard.log")
	t.Setenv("CYBERGUARD_LOG_FILE", logPath)
	t.Setenv("CYBERGUARD_CATALOG", filepath.Join(filepath.Dir(db), "missing.json"))

	_, err := run(t, db, "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load catalog")

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "startup failed")
}
