// Package web hosts the local upload form and JSON API around the shared
// resolver and encoder runner. Each request gets its own temp job directory;
// there is no job table and no cross-request state beyond the history ledger.
package web
