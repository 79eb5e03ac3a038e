// Package main provides the entry point for the contentpipe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jdelaney/contentpipe-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
