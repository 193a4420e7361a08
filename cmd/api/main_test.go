//go:build unit

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_InvalidConfigFailsBeforeListening(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [not, a, map"), 0o600))
	t.Cleanup(func() { configPath = "" })

	rootCmd.SetArgs([]string{"--config", path})
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"extra"})
	assert.Error(t, rootCmd.Execute())
}
