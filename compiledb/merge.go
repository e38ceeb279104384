package compiledb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pio-tools/pioglue/pio"
)

// DBName is the compile database file name.
const DBName = "compile_commands.json"

// BuildDBPath returns the per-environment compile database path PlatformIO
// writes when the redirection extra_script is installed.
func BuildDBPath(projectDir, env string) string {
	return filepath.Join(projectDir, ".pio", "build", env, DBName)
}

// LoadEnvCommands reads one environment's compile database.
func LoadEnvCommands(projectDir, env string) ([]Command, error) {
	path := BuildDBPath(projectDir, env)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pio.ErrValidation(fmt.Sprintf("failed to read %s: %v", path, err))
	}
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, pio.ErrParse(fmt.Sprintf("failed to read %s: %v", path, err))
	}
	return cmds, nil
}

// Result is the outcome of a merge.
type Result struct {
	TargetEnv      string
	Environments   int
	TotalCommands  int
	TargetCommands int
	// Entries is the merged database, sorted by file path.
	Entries []Command
}

// Reduction returns the percentage of commands the merge eliminated.
func (r *Result) Reduction() float64 {
	if r.TotalCommands == 0 {
		return 0
	}
	return 100 - float64(len(r.Entries))*100/float64(r.TotalCommands)
}

// Merge loads every environment's compile database concurrently, deduplicates
// shared sources with the target environment taking priority, and strips each
// entry down to its essential arguments. An empty targetEnv selects the first
// environment; a targetEnv outside envs is a validation error.
//
// Entries come back sorted by file path so the merged database is stable
// across runs.
func Merge(projectDir, targetEnv string, envs []string) (*Result, error) {
	if len(envs) == 0 {
		return nil, pio.ErrValidation("no environments to merge")
	}
	if targetEnv == "" {
		targetEnv = envs[0]
	} else if !slices.Contains(envs, targetEnv) {
		return nil, pio.ErrValidation(fmt.Sprintf(
			"environment %q not found. Available: %s", targetEnv, strings.Join(envs, ", ")))
	}

	perEnv := make([][]Command, len(envs))
	loadErrs := make([]error, len(envs))
	var g errgroup.Group
	for i, env := range envs {
		i, env := i, env
		g.Go(func() error {
			cmds, err := LoadEnvCommands(projectDir, env)
			if err != nil {
				loadErrs[i] = err
				return err
			}
			perEnv[i] = cmds
			return nil
		})
	}
	if g.Wait() != nil {
		var details []string
		for _, err := range loadErrs {
			if err != nil {
				details = append(details, pio.WrapError(err).Detail)
			}
		}
		return nil, pio.ErrValidation(fmt.Sprintf("failed to process %d/%d environments: %s",
			len(details), len(envs), strings.Join(details, "; ")))
	}

	total := 0
	for _, cmds := range perEnv {
		total += len(cmds)
	}

	// Target environment entries claim their keys first; the remaining
	// environments, in manifest order, only contribute files not seen yet.
	targetIdx := slices.Index(envs, targetEnv)
	merged := make(map[string]Command, len(perEnv[targetIdx])*3/2)
	addEnv := func(cmds []Command) {
		for _, cmd := range cmds {
			key := dedupKey(cmd)
			if _, ok := merged[key]; !ok {
				merged[key] = cmd
			}
		}
	}
	addEnv(perEnv[targetIdx])
	for i, cmds := range perEnv {
		if i != targetIdx {
			addEnv(cmds)
		}
	}

	entries := make([]Command, 0, len(merged))
	for _, cmd := range merged {
		if len(cmd.Arguments) > 0 {
			cmd.Arguments = FilterArgs(cmd.Arguments)
		} else {
			cmd.Arguments = FilterCommand(cmd.Command)
		}
		cmd.Command = ""
		entries = append(entries, cmd)
	}
	slices.SortFunc(entries, func(a, b Command) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		return strings.Compare(a.Directory, b.Directory)
	})

	return &Result{
		TargetEnv:      targetEnv,
		Environments:   len(envs),
		TotalCommands:  total,
		TargetCommands: len(perEnv[targetIdx]),
		Entries:        entries,
	}, nil
}

// WriteFile writes the merged entries as indented JSON to path, replacing any
// existing file.
func (r *Result) WriteFile(path string) error {
	data, err := json.MarshalIndent(r.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
