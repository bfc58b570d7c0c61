package vasm

import "errors"

// Error types for the vasm package. Compile-time structural problems are
// always reported by Compile, never deferred into Transform.
var (
	// ErrInvalidModelType is returned when the declared model type
	// string is not one of petriNet, elementary, workflow.
	ErrInvalidModelType = errors.New("invalid model type")

	// ErrDanglingArc is returned when an arc names a place or
	// transition absent from the net.
	ErrDanglingArc = errors.New("dangling arc reference")

	// ErrInvalidArc is returned when a flow arc is both or neither
	// consume and produce.
	ErrInvalidArc = errors.New("invalid arc")

	// ErrInvalidInitialMarking is returned when a place declares a
	// negative initial token count.
	ErrInvalidInitialMarking = errors.New("invalid initial marking")

	// ErrOffsetOverflow is returned when a place or transition offset
	// falls outside the dense index range.
	ErrOffsetOverflow = errors.New("offset overflow")

	// ErrUnknownAction is returned by Transform when the action name
	// is absent from the compiled transition set.
	ErrUnknownAction = errors.New("unknown action")
)
