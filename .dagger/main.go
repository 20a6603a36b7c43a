// Oab CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/oab/internal/dagger"
)

// Oab is the main module for the oab CI/CD pipeline
type Oab struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Oab CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".oab", "build", "tmp", "_examples"]
	source *dagger.Directory,
) *Oab {
	return &Oab{
		Source: source,
	}
}

// goContainer returns an Alpine-based Go container with the project source
// mounted. The module is pure Go so CGO stays off.
func (o *Oab) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", o.Source)
}

// Test runs the oab unit tests with ginkgo
func (o *Oab) Test(ctx context.Context) (string, error) {
	return o.goContainer().
		WithExec([]string{"go", "run", "github.com/onsi/ginkgo/v2/ginkgo", "-r", "--randomize-all", "--fail-on-pending"}).
		Stdout(ctx)
}
