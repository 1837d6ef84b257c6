// Package main is the entry point for the districtboard CLI.
package main

import "github.com/dbmrq/districtboard/cmd/districtboard/cmd"

// Version information, set by build flags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date
	cmd.Execute()
}
