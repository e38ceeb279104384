// Package clangd compiles PlatformIO environment metadata into the .clangd
// configuration file read by the clangd language server.
//
// Compilation is pure and deterministic: the same environment and policy
// always produce byte-identical text. Writing the file is a separate step.
package clangd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pio-tools/pioglue/pio"
)

// FileName is the configuration file name the language server looks for at
// the project root.
const FileName = ".clangd"

// Config is a compiled configuration: the ordered directive list plus the
// compiler path. Treat it as immutable once built.
type Config struct {
	Directives []string
	Compiler   string
}

// Compile transforms one environment's metadata into .clangd directives.
// Ordering is fixed: defines first, then includes (build, compatlib,
// toolchain, each in list order), then the flags that survive the policy in
// their original order. Every raw flag appears exactly once: unchanged,
// rewritten, or dropped.
func Compile(env pio.Environment, policy Policy) Config {
	inc := env.Includes
	directives := make([]string, 0,
		len(env.Defines)+len(inc.Build)+len(inc.Compatlib)+len(inc.Toolchain)+len(env.CxxFlags))

	for _, def := range env.Defines {
		directives = append(directives, "-D"+def)
	}
	for _, group := range [][]string{inc.Build, inc.Compatlib, inc.Toolchain} {
		for _, path := range group {
			directives = append(directives, "-I"+path)
		}
	}
	for _, flag := range env.CxxFlags {
		if policy.Skipped(flag) {
			continue
		}
		directives = append(directives, policy.Rewrite(flag))
	}

	return Config{Directives: directives, Compiler: env.CxxPath}
}

// Render serializes the configuration into the exact text clangd reads.
func (c Config) Render() string {
	var b strings.Builder
	b.WriteString("CompileFlags:\n")
	b.WriteString("  Add:\n")
	for _, d := range c.Directives {
		b.WriteString("    - ")
		b.WriteString(d)
		b.WriteByte('\n')
	}
	b.WriteString("  Compiler: ")
	b.WriteString(c.Compiler)
	b.WriteByte('\n')
	return b.String()
}

// WriteFile renders the configuration and writes it to path, replacing any
// existing file.
func (c Config) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(c.Render()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Stats summarizes a compilation for reporting.
type Stats struct {
	Defines  int
	Includes int
	Kept     int
	Filtered int
}

// Summarize computes the report numbers for an environment under a policy.
// Includes spans all three categories.
func Summarize(env pio.Environment, policy Policy) Stats {
	kept := 0
	for _, flag := range env.CxxFlags {
		if !policy.Skipped(flag) {
			kept++
		}
	}
	return Stats{
		Defines:  len(env.Defines),
		Includes: len(env.Includes.Build) + len(env.Includes.Compatlib) + len(env.Includes.Toolchain),
		Kept:     kept,
		Filtered: len(env.CxxFlags) - kept,
	}
}
