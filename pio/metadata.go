package pio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Includes groups the include paths of an environment by origin.
type Includes struct {
	Build     []string `json:"build"`
	Compatlib []string `json:"compatlib"`
	Toolchain []string `json:"toolchain"`
}

// Environment is the build configuration of a single PlatformIO environment
// as reported by `pio project metadata`. It is read-only to consumers.
type Environment struct {
	Includes Includes `json:"includes"`
	Defines  []string `json:"defines"`
	CxxFlags []string `json:"cxx_flags"`
	CxxPath  string   `json:"cxx_path"`
}

// requiredKeys are the fields every environment object must carry. A missing
// include category inside "includes" is fine (treated as empty); a missing
// top-level key is a data-contract violation.
var requiredKeys = []string{"includes", "defines", "cxx_flags", "cxx_path"}

// UnmarshalJSON decodes an environment strictly: absent required keys fail
// with a validation error instead of silently zeroing the field.
func (e *Environment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return ErrValidation(fmt.Sprintf("metadata is missing the %q key", key))
		}
	}

	type environment Environment // shed UnmarshalJSON
	var env environment
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	*e = Environment(env)
	return nil
}

// Metadata is the full project metadata document, keyed by environment name.
// Document order is preserved so that "the first environment" is a stable
// notion; a plain map would shuffle it.
type Metadata struct {
	names []string
	envs  map[string]Environment
}

// UnmarshalJSON walks the document with a token decoder to record the
// environment names in the order the tool emitted them.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrParse("project metadata is not a JSON object")
	}

	m.names = nil
	m.envs = make(map[string]Environment)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return ErrParse("project metadata has a non-string environment key")
		}

		var env Environment
		if err := dec.Decode(&env); err != nil {
			var typed Error
			if errors.As(err, &typed) {
				return ErrValidation(fmt.Sprintf("environment %q: %s", name, typed.Detail))
			}
			return fmt.Errorf("environment %q: %w", name, err)
		}

		m.names = append(m.names, name)
		m.envs[name] = env
	}

	_, err = dec.Token() // closing brace
	return err
}

// Names returns the environment names in document order.
func (m *Metadata) Names() []string {
	return m.names
}

// Len returns the number of environments in the document.
func (m *Metadata) Len() int {
	return len(m.names)
}

// Env looks up a single environment by name.
func (m *Metadata) Env(name string) (Environment, bool) {
	env, ok := m.envs[name]
	return env, ok
}

// Resolve picks the environment to work with. An empty name selects the
// first environment in document order; a name the document does not carry
// fails with a validation error that lists the valid choices.
func (m *Metadata) Resolve(name string) (string, Environment, error) {
	if len(m.names) == 0 {
		return "", Environment{}, ErrValidation("project metadata contains no environments")
	}
	if name == "" {
		name = m.names[0]
	}
	env, ok := m.envs[name]
	if !ok {
		return "", Environment{}, ErrValidation(fmt.Sprintf(
			"environment %q not found. Available: %s", name, strings.Join(m.names, ", ")))
	}
	return name, env, nil
}
