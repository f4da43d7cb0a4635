//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine, with pointfield.toml when present.
func (Run) Engine() error {
	mg.Deps(Build.Shaders)
	args := []string{"run", "."}
	if _, err := os.Stat(configFile); err == nil {
		args = append(args, "-config", configFile)
	}
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
