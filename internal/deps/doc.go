// Package deps checks availability of the external binaries movpress
// shells out to.
package deps
