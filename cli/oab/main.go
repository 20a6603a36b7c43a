package main

import (
	"os"

	oabcmder "github.com/openagentsbuilder/oab/cmd/oab"
)

func main() {
	cmd := oabcmder.NewOabCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
