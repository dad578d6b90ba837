//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the picking CLI into bin/.
func (Build) Cli() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/pickcli", "./cmd/pickcli"), withStream())
	return err
}

// Tidies go.mod and builds every package.
func (Build) All() error {
	mg.Deps(goTidy)
	_, err := executeCmd("go", withArgs("build", "./..."), withStream())
	return err
}
