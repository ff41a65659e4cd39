// Package preset holds the fixed compression preset table offered to users
// as shortcuts for common quality/size tradeoffs.
package preset
