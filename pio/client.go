// Package pio speaks to the PlatformIO command line tool: it invokes the
// tool, decodes the JSON project metadata it returns, and scans a project's
// platformio.ini for declared environments.
package pio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultBinary is the PlatformIO executable looked up on PATH.
const DefaultBinary = "pio"

// Client queries PlatformIO projects through the pio executable.
type Client struct {
	runner Runner
	binary string
}

// New creates a Client that invokes pio from PATH.
func New() *Client {
	return NewWithRunner(ExecRunner{})
}

// NewWithRunner creates a Client with a custom process runner. Tests use this
// to script the tool's output without spawning anything.
func NewWithRunner(runner Runner) *Client {
	return &Client{runner: runner, binary: DefaultBinary}
}

// NewWithBinary creates a Client invoking the named executable instead of the
// default one.
func NewWithBinary(runner Runner, binary string) *Client {
	return &Client{runner: runner, binary: binary}
}

// ProjectMetadata runs `pio project metadata --json-output` in dir and
// decodes the result. Environments keep the order the tool reported them in.
//
// The first metadata run of a fresh project also resolves dependencies and
// can take minutes; pass a context if the caller wants to bail out early.
func (c *Client) ProjectMetadata(ctx context.Context, dir string) (*Metadata, error) {
	out, err := c.runner.Run(ctx, dir, c.binary, "project", "metadata", "--json-output")
	if err != nil {
		return nil, WrapError(err)
	}

	var meta Metadata
	if err := json.Unmarshal(out, &meta); err != nil {
		var typed Error
		if errors.As(err, &typed) {
			return nil, typed
		}
		return nil, ErrParse(fmt.Sprintf("decoding project metadata: %v", err))
	}
	return &meta, nil
}
