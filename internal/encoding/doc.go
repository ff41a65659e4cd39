// Package encoding resolves compression requests into canonical ffmpeg
// parameter lists and invokes the external encoder. Resolution is a pure
// function; only the runner touches the filesystem or spawns processes.
package encoding
