// Package preflight runs startup checks over directories and external
// binaries, surfaced by the doctor command and the web status endpoint.
package preflight
