//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the engine into bin/pointfield.
func (Build) Engine() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "pointfield"), "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Checks every GLSL source under assets/shaders with glslangValidator.
func (Build) Shaders() error {
	sources, err := shaderSources()
	if err != nil {
		return err
	}
	for _, src := range sources {
		if _, err := executeCmd("glslangValidator", withArgs(src)); err != nil {
			return fmt.Errorf("shader %s: %w", src, err)
		}
	}
	return nil
}

// Runs the test suite.
func Test() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
