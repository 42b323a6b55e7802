// Package tree implements the in-memory namespace tree: path resolution,
// structural mutation (create, delete, rename, move, copy) and line-oriented
// content editing on file nodes.
//
// The package never prints or logs; every operation returns a success value
// or an *Error wrapping one of the sentinel errors below. Callers classify
// failures with errors.Is and own all user-facing presentation.
package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a path does not resolve to a node
	ErrNotFound = errors.New("path not found")

	// ErrNotADirectory indicates the operation target is not a directory
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotAFile indicates the operation target is not a file
	ErrNotAFile = errors.New("not a file")

	// ErrDuplicateName indicates a sibling already bears the requested name
	ErrDuplicateName = errors.New("name already exists")

	// ErrRootProtected indicates an attempt to delete, rename or move the root
	ErrRootProtected = errors.New("root directory is protected")

	// ErrInvalidArgument indicates malformed input such as a bad file suffix
	// or an out-of-range line number
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error wraps a tree failure with the operation that failed and the
// affected path or name, so callers get useful context without the core
// formatting user-facing messages itself.
type Error struct {
	Op   string // Operation that failed (e.g. "resolve", "mkdir")
	Path string // Affected path or name
	Err  error  // Underlying sentinel error
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// Common operation names for consistent error reporting
const (
	OpResolve    = "resolve"
	OpList       = "ls"
	OpMkdir      = "mkdir"
	OpTouch      = "touch"
	OpCd         = "cd"
	OpRemove     = "rm"
	OpRename     = "rename"
	OpCopy       = "cp"
	OpMove       = "mv"
	OpStat       = "stat"
	OpSetContent = "setcontent"
	OpAppend     = "append"
	OpEditLine   = "editline"
	OpDeleteLine = "deline"
	OpRead       = "read"
)

func opError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}
