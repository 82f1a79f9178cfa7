// Package cli wires together the Cobra command tree for the ohmyfix binary.
//
// It defines the root command with its interactive menu and all subcommands
// (fix, deps, setup, config, models, cache, version), binds flags, reads
// configuration, drives the review engine, and returns deterministic exit
// codes.
package cli
