package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/kgprune/internal/cli/config"
)

func TestInitCommand(t *testing.T) {
	tests := []struct {
		name     string
		setupDir func(t *testing.T, dir string)
		args     []string
		wantErr  string
	}{
		{
			name: "init empty directory",
			args: []string{},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "kgprune.yaml"), []byte("existing"), 0600))
			},
			args:    []string{},
			wantErr: "already exists",
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "kgprune.yaml"), []byte("existing"), 0600))
			},
			args: []string{"--force"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			out, err := execute(t, NewInitCommand(), tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "kgprune configuration initialized!")

			// The written file loads back to the defaults.
			cfg, err := config.LoadConfig("", "", nil)
			require.NoError(t, err)
			assert.Equal(t, config.Default(), cfg)
			assert.Equal(t, "kgprune.yaml", config.GetConfigFileUsed())
		})
	}
}

func TestInitCommand_Directory(t *testing.T) {
	t.Chdir(t.TempDir())
	target := filepath.Join(t.TempDir(), "graphs", "primekg")

	_, err := execute(t, NewInitCommand(), target)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(target, "kgprune.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "node_delimiter: tab")
	assert.Contains(t, string(content), "node_file: node.csv")

	cfg, err := config.LoadConfig("", target, nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
