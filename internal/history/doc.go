// Package history keeps the most recent download results in memory.
package history
