package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pio-tools/pioglue/internal/configpaths"
	"github.com/pio-tools/pioglue/pio"
)

const extraScriptName = "env_compiledb.py"

// extraScriptContent is the PlatformIO extra script that redirects each
// environment's compile database into its own build directory, so the merge
// step finds one database per environment instead of a shared overwritten one.
const extraScriptContent = `"""
Generates compile_commands.json in the environment build directory
rather than the project root.

There are 2 ways to use this script as described below.

  #1) Add as an extra_scripts in platformio.ini

    Add to platformio.ini:
      ...
      extra_scripts = post:scripts/env_compiledb.py
      ...

    Usage:
      pio run -e MyEnvNameHere -t compiledb

    Output:
      <project_root>/.pio/build/MyEnvNameHere/compile_commands.json


  #2) Import as module in an existing 'extra_scripts' as a 'post' script

      Import("env")
      from env_compiledb import setup_compiledb
      ...
      setup_compiledb(env)
      ...

     Output:
       Same as in #1
"""


def setup_compiledb(env):
    """
    Configure compile_commands.json generation.

    Args:
        env: PlatformIO SCons environment object
    """
    # Change output directory
    env.Replace(COMPILATIONDB_PATH="$BUILD_DIR/compile_commands.json")

    # Include toolchain paths
    env.Replace(COMPILATIONDB_INCLUDE_TOOLCHAIN=True)


# Auto-run when used as extra_script
try:
    Import("env")
    setup_compiledb(env)
except NameError:
    # env not available - being imported as module
    pass
`

// Install copies the compile database redirection script into a project's
// scripts directory so `pio run -t compiledb` writes one database per
// environment.
type Install struct {
	ProjectDir string `help:"PlatformIO project directory" default:"." env:"PIOGLUE_PROJECT_DIR"`
	Force      bool   `help:"Overwrite the script if it is already installed"`
	Uninstall  bool   `help:"Remove the installed script instead"`
}

func (c *Install) Run(logger *slog.Logger) error {
	iniPath := filepath.Join(c.ProjectDir, pio.IniName)
	if _, err := os.Stat(iniPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pio.ErrValidation(fmt.Sprintf("%s not found", iniPath))
		}
		return fmt.Errorf("stat %s: %w", iniPath, err)
	}

	scriptPath := filepath.Join(c.ProjectDir, "scripts", extraScriptName)

	if c.Uninstall {
		if err := os.Remove(scriptPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Info("nothing to remove", "path", scriptPath)
				return nil
			}
			return fmt.Errorf("failed to remove %s: %w", scriptPath, err)
		}
		logger.Info("removed extra script", "path", scriptPath)
		return nil
	}

	if _, err := os.Stat(scriptPath); err == nil && !c.Force {
		return pio.ErrValidation(fmt.Sprintf("%s already exists; use --force to overwrite", scriptPath))
	}
	if err := configpaths.EnsureDir(scriptPath); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}
	if err := os.WriteFile(scriptPath, []byte(extraScriptContent), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	logger.Info("installed extra script", "path", scriptPath)

	if !iniReferencesScript(iniPath) {
		logger.Warn("platformio.ini does not reference the script",
			"hint", "add 'extra_scripts = post:scripts/"+extraScriptName+"' to your environments")
	}
	return nil
}

// iniReferencesScript reports whether platformio.ini mentions the extra
// script anywhere. A missing or unreadable file counts as not referencing it.
func iniReferencesScript(iniPath string) bool {
	data, err := os.ReadFile(iniPath)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), extraScriptName)
}
