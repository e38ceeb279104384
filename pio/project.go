package pio

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// IniName is the manifest file every PlatformIO project carries.
const IniName = "platformio.ini"

// envSection matches an [env:NAME] section header anywhere in a line, so
// trailing comments or whitespace do not hide an environment.
var envSection = regexp.MustCompile(`\[env:([a-zA-Z0-9_-]+)\]`)

// ListEnvironments scans projectDir's platformio.ini for [env:NAME] sections
// and returns the names in file order. It reads the manifest directly instead
// of asking the tool, which takes seconds to answer the same question.
func ListEnvironments(projectDir string) ([]string, error) {
	iniPath := filepath.Join(projectDir, IniName)
	f, err := os.Open(iniPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrValidation(fmt.Sprintf("%s not found", iniPath))
		}
		return nil, ErrValidation(fmt.Sprintf("failed to open %s: %v", iniPath, err))
	}
	defer f.Close()

	var envs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := envSection.FindStringSubmatch(scanner.Text()); m != nil {
			envs = append(envs, m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, ErrInternal(fmt.Sprintf("reading %s: %v", iniPath, err))
	}
	if len(envs) == 0 {
		return nil, ErrValidation(fmt.Sprintf("no environments found in %s", iniPath))
	}
	return envs, nil
}
