// Package state records generation runs in SQLite. The ledger holds one
// row per run, the outputs each run wrote, and the last seen content hash
// of every element document, which drives incremental generation.
//
// The record types live in pkg/core; this package re-exports them.
package state

import (
	"errors"

	"github.com/leapstack-labs/gumcodegen/pkg/core"
)

// ErrNotOpen is returned by every operation on a store that has not been
// opened.
var ErrNotOpen = errors.New("state store not opened")

type (
	// Store is an alias for core.Store.
	Store = core.Store

	// RunStatus is an alias for core.RunStatus.
	RunStatus = core.RunStatus

	// Run is an alias for core.Run.
	Run = core.Run

	// ElementOutput is an alias for core.ElementOutput.
	ElementOutput = core.ElementOutput
)

// Re-export status constants from core.
const (
	RunStatusRunning   = core.RunStatusRunning
	RunStatusCompleted = core.RunStatusCompleted
	RunStatusFailed    = core.RunStatusFailed
	RunStatusCancelled = core.RunStatusCancelled
)
