package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pio-tools/pioglue/internal/cmd"
)

func TestConfigInitClangdTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clangd.json")
	c := cmd.ConfigInit{Command: "clangd", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))

	// Keys are the kong flag names, otherwise the config resolvers skip them.
	assert.Equal(t, "", root["output"])
	assert.Equal(t, ".", root["project-dir"])
	assert.Equal(t, "pio", root["binary"])
	assert.Equal(t, []any{}, root["skip-flag"])
	assert.Equal(t, map[string]any{}, root["transform"])

	// Positional arguments never come from config files.
	assert.NotContains(t, root, "env")
}

func TestConfigInitCompiledbTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "compiledb.json")
	c := cmd.ConfigInit{Command: "compiledb", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))

	assert.Equal(t, ".", root["project-dir"])
	assert.Contains(t, root, "output")
	assert.NotContains(t, root, "env")
}

func TestConfigInitFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"project-dir"`},
		{format: "yaml", want: "project-dir:"},
		{format: "toml", want: `project-dir = "."`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "clangd."+tt.format)
			c := cmd.ConfigInit{Command: "clangd", Format: tt.format, Output: dest}
			require.NoError(t, c.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clangd.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	c := cmd.ConfigInit{Command: "clangd", Format: "json", Output: dest}
	err := c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	c.Force = true
	require.NoError(t, c.Run())
}
