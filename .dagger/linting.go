package main

import (
	"context"
	"fmt"

	"dagger/oab/internal/dagger"
)

const golangciLintVersion = "v2.8.0"

// lintOpts layers golangci-lint on top of goContainer().
func (o *Oab) lintOpts() dagger.GolangcilintOpts {
	base := o.goContainer().
		WithExec([]string{
			"go",
			"install",
			fmt.Sprintf("github.com/golangci/golangci-lint/v2/cmd/golangci-lint@%s", golangciLintVersion),
		})

	return dagger.GolangcilintOpts{
		BaseCtr: base,
		Config:  o.Source.File(".golangci.yml"),
	}
}

// CheckLint runs golangci-lint without applying fixes.
func (o *Oab) CheckLint(ctx context.Context) (string, error) {
	return dag.Golangcilint(o.Source, o.lintOpts()).Check(ctx)
}

// FixLint runs golangci-lint with --fix and returns the modified source directory.
func (o *Oab) FixLint(ctx context.Context) *dagger.Directory {
	return dag.Golangcilint(o.Source, o.lintOpts()).Lint()
}
