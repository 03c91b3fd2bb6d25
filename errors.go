package gui

import "errors"

// Sentinel errors for the gui package. Most recoverable situations inside
// the core are log-and-continue rather than error returns; these sentinels
// cover the few construction paths that can fail.
var (
	// ErrStaleID is returned when an identifier's generation no longer
	// matches the slot it points to.
	ErrStaleID = errors.New("gui: stale control id")

	// ErrNotBuilded is returned when an operation requires a control that
	// finished building but the target is still reserved or free.
	ErrNotBuilded = errors.New("gui: control is not builded")

	// ErrHasParent is returned when a control is linked under itself or a
	// control that already has it as an ancestor.
	ErrHasParent = errors.New("gui: control already has a parent")
)
