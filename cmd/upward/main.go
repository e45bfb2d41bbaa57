// Package main is the single-binary entrypoint for Upward.
// Upward is a local-first personal progress engine — one binary, your data.
package main

import "github.com/upward-labs/upward/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
