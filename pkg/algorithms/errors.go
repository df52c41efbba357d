package algorithms

import "errors"

// Sentinel errors returned by the analysis functions. They are wrapped with
// operation context; test with errors.Is.
var (
	ErrDegenerateGraph   = errors.New("operation undefined for graphs with this few nodes")
	ErrDisconnectedGraph = errors.New("graph is not connected")
	ErrConvergence       = errors.New("iteration did not converge")
	ErrUnreachableGroup  = errors.New("node unreachable from group")
)
