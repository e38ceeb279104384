// Package testing holds shared fixtures for exercising pioglue packages
// without a PlatformIO installation on the machine.
package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FakeRunner scripts the output of an external command and records every
// invocation. It satisfies pio.Runner.
type FakeRunner struct {
	Stdout []byte
	Err    error

	Calls [][]string
	Dirs  []string
}

func (r *FakeRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, append([]string{name}, args...))
	r.Dirs = append(r.Dirs, dir)
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Stdout, nil
}

// WriteProject creates a throwaway project directory holding a platformio.ini
// that declares the given environments, shaped like `pio project init` output.
func WriteProject(t *testing.T, envs ...string) string {
	t.Helper()
	dir := t.TempDir()
	WriteIni(t, dir, envs...)
	return dir
}

// WriteIni writes a platformio.ini declaring the given environments into dir.
// With no environments the manifest carries only the [platformio] section.
func WriteIni(t *testing.T, dir string, envs ...string) {
	t.Helper()
	var b strings.Builder
	b.WriteString("[platformio]\n")
	if len(envs) > 0 {
		fmt.Fprintf(&b, "default_envs = %s\n\n", envs[0])
	} else {
		b.WriteString("default_envs = none\n")
	}
	for _, env := range envs {
		fmt.Fprintf(&b, "[env:%s]\nplatform = espressif32\nboard = esp32dev\nframework = arduino\n\n", env)
	}
	if err := os.WriteFile(filepath.Join(dir, "platformio.ini"), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write platformio.ini: %v", err)
	}
}

// WriteCompileDB drops a compile database into the environment's build
// directory under dir and returns its path.
func WriteCompileDB(t *testing.T, dir, env string, content []byte) string {
	t.Helper()
	buildDir := filepath.Join(dir, ".pio", "build", env)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("create build dir: %v", err)
	}
	path := filepath.Join(buildDir, "compile_commands.json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write compile_commands.json: %v", err)
	}
	return path
}
