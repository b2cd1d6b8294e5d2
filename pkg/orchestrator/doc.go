// Package orchestrator runs the export pipeline: declaration files are
// loaded, normalized through a helper and written as ACF local JSON or PHP
// registration code. Watch repeats the export whenever declarations change.
package orchestrator
