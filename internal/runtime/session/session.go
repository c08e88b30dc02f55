// Package session assigns a process-wide identifier to each runtime
// Context run, used to correlate loader/link diagnostics across a
// multi-module execution. Grounded on the teacher's use of google/uuid
// for instance identity (internal/evaluator/builtins_uuid.go) — the
// practical use for a UUID in this single-process, single-threaded
// runtime is tagging one run's log lines, not distributed identity.
package session

import "github.com/google/uuid"

type ID string

// New mints a fresh run identifier.
func New() ID {
	return ID(uuid.New().String())
}
