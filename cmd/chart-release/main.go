// Package main provides the chart-release CLI, which promotes release tags
// into Helm chart metadata and reports the outcome for CI workflows.
package main

import (
	"fmt"
	"os"
)

// diagPrefix tags every fatal diagnostic so callers can grep it out of the
// action log. Kept stable for compatibility with the composite action.
const diagPrefix = "[update_helm_chart]"

// Version and Commit are overridden at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", diagPrefix, err)
		os.Exit(1)
	}
}
