// Package main provides the entry point for the pleiades-wikidata CLI tool.
package main

import (
	"github.com/isawnyu/pleiades-wikidata/cmd/pleiades-wikidata/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
