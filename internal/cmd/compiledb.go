package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pio-tools/pioglue/compiledb"
	"github.com/pio-tools/pioglue/pio"
)

// Compiledb merges the per-environment compile databases PlatformIO writes
// under .pio/build into one compile_commands.json at the project root.
type Compiledb struct {
	Env        string `arg:"" optional:"" help:"Environment whose entries win on conflict (defaults to the first one in platformio.ini)"`
	ProjectDir string `help:"PlatformIO project directory" default:"." env:"PIOGLUE_PROJECT_DIR"`
	Output     string `help:"Path of the merged database (defaults to compile_commands.json in the project directory)" env:"PIOGLUE_OUTPUT"`
}

func (c *Compiledb) Run(logger *slog.Logger) error {
	envs, err := pio.ListEnvironments(c.ProjectDir)
	if err != nil {
		return err
	}
	logger.Debug("merging compile databases", "environments", len(envs))

	res, err := compiledb.Merge(c.ProjectDir, c.Env, envs)
	if err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = filepath.Join(c.ProjectDir, compiledb.DBName)
	}
	if err := res.WriteFile(output); err != nil {
		return err
	}

	logger.Info("merged compile databases",
		"path", output,
		"environments", res.Environments,
		"targetEnv", res.TargetEnv,
		"targetCommands", res.TargetCommands,
		"commands", res.TotalCommands,
		"entries", len(res.Entries),
		"reduction", fmt.Sprintf("%.1f%%", res.Reduction()))
	return nil
}
