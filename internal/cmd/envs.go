package cmd

import (
	"fmt"

	"github.com/pio-tools/pioglue/pio"
)

// Envs prints the environments declared in a project's platformio.ini, one
// per line, in declaration order.
type Envs struct {
	ProjectDir string `help:"PlatformIO project directory" default:"." env:"PIOGLUE_PROJECT_DIR"`
}

func (c *Envs) Run() error {
	envs, err := pio.ListEnvironments(c.ProjectDir)
	if err != nil {
		return err
	}
	for _, env := range envs {
		fmt.Println(env)
	}
	return nil
}
