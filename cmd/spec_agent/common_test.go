package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	charterPath := writeTestFile(t, dir, "harbor.json", testCharterJSON)

	cfg, err := loadConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Charter)

	good := writeTestFile(t, dir, "config.json", `{"charter": "`+charterPath+`", "unresolved": "sentinel", "format": "html"}`)
	cfg, err = loadConfigFile(good)
	require.NoError(t, err)
	assert.Equal(t, charterPath, cfg.Charter)
	assert.Equal(t, "html", cfg.Format)

	bad := writeTestFile(t, dir, "bad.json", `{"unresolved": "drop"}`)
	_, err = loadConfigFile(bad)
	assert.Error(t, err)
}

func TestStringFlag(t *testing.T) {
	var value string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&value, "format", "markdown", "")

	assert.Equal(t, "html", stringFlag(cmd, "format", value, "html"))
	assert.Equal(t, "markdown", stringFlag(cmd, "format", value, ""))

	require.NoError(t, cmd.Flags().Set("format", "latex"))
	assert.Equal(t, "latex", stringFlag(cmd, "format", value, "html"))
}

func TestWriteOutput_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, writeOutput(path, []byte("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
