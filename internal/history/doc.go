// Package history keeps an append-only SQLite ledger of finished
// compressions for the history command and the web history endpoint.
package history
