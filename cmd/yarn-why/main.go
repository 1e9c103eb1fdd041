// Command yarn-why explains why a package is present in a yarn lockfile.
//
// Usage:
//
//	yarn-why [flags] <package[@range]>
//
// Run yarn-why -h for the full flag list.
package main

import (
	"os"

	"github.com/albertocavalcante/go-yarnwhy/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.OSEnvironment(), os.Args[1:]))
}
