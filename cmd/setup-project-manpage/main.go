package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/atopile/faebryk-project-template/internal/cli"
	"github.com/atopile/faebryk-project-template/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SETUP-PROJECT",
		Section: "1",
		Source:  "setup-project " + version.Version,
		Manual:  "setup-project manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
