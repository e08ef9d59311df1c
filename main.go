// Package main is the entry point for the pbrew CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The pbrew tool wraps Homebrew and runs
// independent package operations (fetch, install, reinstall) in parallel
// under a bounded concurrency limit.
package main

import "github.com/ajxudir/pbrew/cmd"

// main initializes and runs the pbrew CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like update, upgrade, install and reinstall.
func main() {
	cmd.Execute()
}
