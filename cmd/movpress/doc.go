// Package main hosts the movpress CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto the internal
// packages: one-shot compression through the encoding resolver and runner,
// preset listing, environment checks, the compression history ledger, and
// configuration scaffolding. It centralizes configuration resolution and
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
