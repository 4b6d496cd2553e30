// Package main is the entry point for the fraglog CLI tool, which parses
// game-server console transcripts and computes per-match and session stats.
package main

import "github.com/pable/fraglog/cmd"

func main() {
	cmd.Execute()
}
