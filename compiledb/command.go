// Package compiledb merges the per-environment compile databases PlatformIO
// generates into a single project-root compile_commands.json, trimmed down to
// the arguments clangd needs for semantic analysis.
package compiledb

import (
	"path/filepath"
	"strings"
)

// Command is one compile database entry. Merged output always carries an
// argument vector; the command string form is consumed on load and cleared.
type Command struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments"`
	Output    string   `json:"output,omitempty"`
}

// dedupKey normalizes an entry's full path so the same source built by
// several environments collapses into one entry. PlatformIO copies each
// library into .pio/libdeps/<env>/, so that environment segment is cut out
// of the key.
func dedupKey(cmd Command) string {
	path := cmd.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(cmd.Directory, path)
	}
	path = filepath.ToSlash(filepath.Clean(path))

	const marker = ".pio/libdeps/"
	if pos := strings.Index(path, marker); pos >= 0 {
		after := pos + len(marker)
		if slash := strings.Index(path[after:], "/"); slash >= 0 {
			path = path[:after] + path[after+slash+1:]
		}
	}
	return path
}
