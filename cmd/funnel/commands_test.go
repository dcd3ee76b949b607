package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speakergym/funnel-tracker/internal/services"
)

// setupDataDir points the commands at a throwaway data directory.
func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	return dir
}

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

func boolPtr(v bool) *bool { return &v }

func strPtr(s string) *string { return &s }

func TestAddCommand(t *testing.T) {
	dir := setupDataDir(t)
	addNotes = ""

	out, err := captureStdout(t, func() error { return runAdd(nil, []string{"Alice"}) })
	assert.NoError(t, err)
	assert.Contains(t, out, "Added contact: Alice")

	_, err = os.Stat(filepath.Join(dir, "funnel.json"))
	assert.NoError(t, err)

	// The same name in a different case is a duplicate.
	out, err = captureStdout(t, func() error { return runAdd(nil, []string{"ALICE"}) })
	assert.NoError(t, err)
	assert.Contains(t, out, "Contact 'ALICE' already exists. Use the update command instead.")
}

func TestAddTrimsNameAndKeepsNotes(t *testing.T) {
	setupDataDir(t)
	addNotes = "front row regular"
	defer func() { addNotes = "" }()

	out, err := captureStdout(t, func() error { return runAdd(nil, []string{"  Bob  "}) })
	assert.NoError(t, err)
	assert.Contains(t, out, "Added contact: Bob")

	listFilter = ""
	out, err = captureStdout(t, func() error { return runList(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "- Bob (✖ joined, ✖ challenge, ✖ 90-day contact) | notes: front row regular")
}

func TestUpdateFlagMapping(t *testing.T) {
	flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
	registerUpdateFlags(flags)
	require.NoError(t, flags.Parse([]string{"--joined", "--no-challenge", "--notes", "crushed day 3"}))

	upd := contactUpdateFromFlags(flags)
	require.NotNil(t, upd.Joined)
	assert.True(t, *upd.Joined)
	require.NotNil(t, upd.Challenge)
	assert.False(t, *upd.Challenge)
	assert.Nil(t, upd.ContactSubmitted)
	require.NotNil(t, upd.Notes)
	assert.Equal(t, "crushed day 3", *upd.Notes)
}

func TestUpdateFlagMappingUntouchedPairsStayNil(t *testing.T) {
	flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
	registerUpdateFlags(flags)
	require.NoError(t, flags.Parse(nil))

	upd := contactUpdateFromFlags(flags)
	assert.Nil(t, upd.Joined)
	assert.Nil(t, upd.Challenge)
	assert.Nil(t, upd.ContactSubmitted)
	assert.Nil(t, upd.Notes)
}

func TestUpdateCommand(t *testing.T) {
	setupDataDir(t)
	addNotes = ""

	_, err := captureStdout(t, func() error { return runAdd(nil, []string{"Alice"}) })
	require.NoError(t, err)

	// Lookup is case-insensitive but the stored name is printed back.
	out, err := captureStdout(t, func() error {
		return applyContactUpdate("alice", services.ContactUpdate{Joined: boolPtr(true)})
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Updated contact: Alice")

	// Re-applying the same value is a no-op.
	out, err = captureStdout(t, func() error {
		return applyContactUpdate("Alice", services.ContactUpdate{Joined: boolPtr(true)})
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "No updates were applied.")

	// Notes always count as a change, even when set to empty.
	out, err = captureStdout(t, func() error {
		return applyContactUpdate("Alice", services.ContactUpdate{Notes: strPtr("")})
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Updated contact: Alice")
}

func TestUpdateUnknownContact(t *testing.T) {
	setupDataDir(t)

	out, err := captureStdout(t, func() error {
		return applyContactUpdate("Zed", services.ContactUpdate{Joined: boolPtr(true)})
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Contact 'Zed' not found. Add them first.")
}

func TestUpdateCommandThroughRoot(t *testing.T) {
	setupDataDir(t)
	addNotes = ""

	_, err := captureStdout(t, func() error { return runAdd(nil, []string{"Alice"}) })
	require.NoError(t, err)

	rootCmd.SetArgs([]string{"update", "Alice", "--joined", "--notes", "front row"})
	out, err := captureStdout(t, func() error { return rootCmd.Execute() })
	assert.NoError(t, err)
	assert.Contains(t, out, "Updated contact: Alice")

	listFilter = "joined"
	defer func() { listFilter = "" }()
	out, err = captureStdout(t, func() error { return runList(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "- Alice (✔ joined, ✖ challenge, ✖ 90-day contact) | notes: front row")
}

func TestListCommand(t *testing.T) {
	setupDataDir(t)
	addNotes = ""

	for _, name := range []string{"Alice", "Bob", "Cleo"} {
		_, err := captureStdout(t, func() error { return runAdd(nil, []string{name}) })
		require.NoError(t, err)
	}
	_, err := captureStdout(t, func() error {
		return applyContactUpdate("Alice", services.ContactUpdate{Joined: boolPtr(true), Challenge: boolPtr(true)})
	})
	require.NoError(t, err)
	_, err = captureStdout(t, func() error {
		return applyContactUpdate("Bob", services.ContactUpdate{Joined: boolPtr(true), ContactSubmitted: boolPtr(true)})
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		filter   string
		contains []string
		excludes []string
	}{
		{
			name:   "default lists everyone with markers",
			filter: "",
			contains: []string{
				"- Alice (✔ joined, ✔ challenge, ✖ 90-day contact)",
				"- Bob (✔ joined, ✖ challenge, ✔ 90-day contact)",
				"- Cleo (✖ joined, ✖ challenge, ✖ 90-day contact)",
			},
		},
		{
			name:     "joined filter",
			filter:   "joined",
			contains: []string{"Alice", "Bob"},
			excludes: []string{"Cleo"},
		},
		{
			name:     "challenge filter",
			filter:   "challenge",
			contains: []string{"Alice"},
			excludes: []string{"Bob", "Cleo"},
		},
		{
			name:     "contact_submitted filter",
			filter:   "contact_submitted",
			contains: []string{"Bob"},
			excludes: []string{"Alice", "Cleo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listFilter = tt.filter

			out, err := captureStdout(t, func() error { return runList(nil, nil) })

			assert.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestListEmptyStore(t *testing.T) {
	setupDataDir(t)
	listFilter = ""

	out, err := captureStdout(t, func() error { return runList(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "No contacts found.")
}

func TestListRejectsUnknownFilter(t *testing.T) {
	setupDataDir(t)
	listFilter = "customers"
	defer func() { listFilter = "" }()

	err := runList(nil, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --filter")
}

func TestSummaryCommand(t *testing.T) {
	setupDataDir(t)
	addNotes = ""

	for _, name := range []string{"Alice", "Bob"} {
		_, err := captureStdout(t, func() error { return runAdd(nil, []string{name}) })
		require.NoError(t, err)
	}
	_, err := captureStdout(t, func() error {
		return applyContactUpdate("Alice", services.ContactUpdate{
			Joined:           boolPtr(true),
			Challenge:        boolPtr(true),
			ContactSubmitted: boolPtr(true),
		})
	})
	require.NoError(t, err)

	out, err := captureStdout(t, func() error { return runSummary(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "Funnel summary:")
	assert.Contains(t, out, "- Total contacted: 2")
	assert.Contains(t, out, "- Joined community: 1")
	assert.Contains(t, out, "- Took 7-day challenge: 1")
	assert.Contains(t, out, "- Submitted contact for 90-day program: 1")
}

func TestResetCommand(t *testing.T) {
	dir := setupDataDir(t)
	addNotes = ""

	_, err := captureStdout(t, func() error { return runAdd(nil, []string{"Alice"}) })
	require.NoError(t, err)

	out, err := captureStdout(t, func() error { return runReset(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "Data store reset. All contacts removed.")

	data, err := os.ReadFile(filepath.Join(dir, "funnel.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"contacts": []}`, string(data))

	listFilter = ""
	out, err = captureStdout(t, func() error { return runList(nil, nil) })
	assert.NoError(t, err)
	assert.Contains(t, out, "No contacts found.")
}

func TestServeCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", cmd.Name())

	flag := cmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "8000", flag.DefValue)
}
