package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrNodeNotFound   = errors.New("node not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrNotFound       = errors.New("not found")
)

// Error provides structured error information for graph operations.
type Error struct {
	Op      string // Operation that failed (e.g., "build", "weight")
	Entity  string // Entity type (e.g., "node", "edge")
	ID      string // Entity identifier, "u-v" for edges
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s %s %q (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building graph errors.
type ErrorBuilder struct {
	err Error
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: Error{Op: op}}
}

// Node sets the entity to "node" with the given ID.
func (b *ErrorBuilder) Node(id NodeID) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = string(id)
	return b
}

// Edge sets the entity to "edge" with the given endpoints.
func (b *ErrorBuilder) Edge(u, v NodeID) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.ID = string(u) + "-" + string(v)
	return b
}

// Entity sets a free-form entity name.
func (b *ErrorBuilder) Entity(name string) *ErrorBuilder {
	b.err.Entity = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NodeNotFoundError creates a node not found error.
func NodeNotFoundError(op string, id NodeID) error {
	return NewError(op).Node(id).Cause(ErrNodeNotFound).Err()
}

// EdgeNotFoundError creates an edge not found error.
func EdgeNotFoundError(op string, u, v NodeID) error {
	return NewError(op).Edge(u, v).Cause(ErrEdgeNotFound).Err()
}

// IsNotFound returns true if the error is any of the not found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) || errors.Is(err, ErrEdgeNotFound) || errors.Is(err, ErrNotFound)
}

// IsMalformed returns true if the error was caused by invalid input records.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}
