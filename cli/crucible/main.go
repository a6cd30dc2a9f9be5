package main

import (
	"os"

	cruciblecmder "github.com/papercomputeco/crucible/cmd/crucible"
)

func main() {
	cmd := cruciblecmder.NewCrucibleCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
