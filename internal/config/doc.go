// Package config loads and validates the TOML configuration shared by the
// movpress CLI and the movpressd web server.
package config
