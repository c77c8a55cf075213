package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "multiagent version ")
}

func TestGraphCommand(t *testing.T) {
	t.Setenv("MULTIAGENT_ARCHIVE_BACKEND", "none")
	got := execute(t, "graph")
	assert.Contains(t, got, "graph TD")
	assert.Contains(t, got, "validator")
}

func TestRunsCommand_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"runs", "inspect"})
	require.NoError(t, err)
	assert.Equal(t, "inspect <run-id>", cmd.Use)
}
