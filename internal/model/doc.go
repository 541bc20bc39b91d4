// Package model defines the domain values shared across the app: download
// modes, formats and qualities, the static format table that gates them,
// download requests, results and the progress events flowing from the
// worker to the UI.
package model
