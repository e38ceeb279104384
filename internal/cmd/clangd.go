// Package cmd implements the pioglue subcommands.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/pio-tools/pioglue/clangd"
	"github.com/pio-tools/pioglue/internal/log"
	"github.com/pio-tools/pioglue/pio"
)

// Clangd generates a .clangd configuration file from the compiler
// invocation PlatformIO reports for one environment.
type Clangd struct {
	Env        string            `arg:"" optional:"" help:"PlatformIO environment to generate for (defaults to the first one reported)"`
	Output     string            `help:"Path of the generated file (defaults to .clangd in the project directory)" env:"PIOGLUE_OUTPUT"`
	ProjectDir string            `help:"PlatformIO project directory" default:"." env:"PIOGLUE_PROJECT_DIR"`
	Binary     string            `help:"PlatformIO executable to invoke" default:"pio" env:"PIOGLUE_PIO_BINARY"`
	SkipFlag   []string          `name:"skip-flag" help:"Additional compiler flags to drop, besides the built-in set"`
	Transform  map[string]string `help:"Flag rewrites applied before emitting, as old=new pairs"`
}

func (c *Clangd) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pio.NewWithBinary(pio.ExecRunner{Raw: rawLogger}, c.Binary)

	logger.Debug("querying project metadata", "projectDir", c.ProjectDir)
	finish := startSpinner("Querying PlatformIO project metadata (the first run can take a while)")
	meta, err := client.ProjectMetadata(ctx, c.ProjectDir)
	finish()
	if err != nil {
		return err
	}

	name, env, err := meta.Resolve(c.Env)
	if err != nil {
		return err
	}
	if c.Env == "" && meta.Len() > 1 {
		logger.Info("project defines multiple environments, using the first one",
			"environments", strings.Join(meta.Names(), ", "),
			"selected", name)
	}

	output := c.Output
	if output == "" {
		output = filepath.Join(c.ProjectDir, clangd.FileName)
	}
	policy := clangd.NewPolicy(c.SkipFlag, c.Transform)
	cfg := clangd.Compile(env, policy)
	if err := cfg.WriteFile(output); err != nil {
		return err
	}

	stats := clangd.Summarize(env, policy)
	path := output
	if abs, err := filepath.Abs(output); err == nil {
		path = abs
	}
	logger.Info("wrote clangd configuration",
		"path", path,
		"env", name,
		"defines", stats.Defines,
		"includes", stats.Includes,
		"flags", stats.Kept,
		"filtered", stats.Filtered)
	return nil
}
