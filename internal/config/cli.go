// Package config defines the root command line structure parsed by kong.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/pio-tools/pioglue/internal/cmd"
)

// Log groups the logging flags shared by every command.
type Log struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"PIOGLUE_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" env:"PIOGLUE_LOG_FILE"`
	RawFile string `help:"Dump the raw build-tool traffic to this file" env:"PIOGLUE_LOG_RAW_FILE"`
}

// CLI is the root of the pioglue command tree. The clangd command is the
// default, so `pioglue [env]` generates a .clangd file without naming a
// subcommand.
type CLI struct {
	Config  string           `help:"Path to a configuration file" env:"PIOGLUE_CONFIG"`
	Version kong.VersionFlag `help:"Print version and quit"`

	Log Log `embed:"" prefix:"log."`

	Clangd    cmd.Clangd        `cmd:"" default:"withargs" help:"Generate a .clangd configuration from PlatformIO project metadata"`
	Compiledb cmd.Compiledb     `cmd:"" help:"Merge per-environment compile databases into a single compile_commands.json"`
	Envs      cmd.Envs          `cmd:"" help:"List the environments declared in platformio.ini"`
	Install   cmd.Install       `cmd:"" help:"Install the compile database redirection script into a project"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Manage pioglue configuration files"`
}
