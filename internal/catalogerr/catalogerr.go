// Package catalogerr defines the error taxonomy shared by the storage
// engine and the catalog service. Call sites wrap one of these sentinels
// with fmt.Errorf's %w so callers dispatch with errors.Is instead of a
// three-way exception hierarchy.
package catalogerr

import "errors"

var (
	// ErrIO marks a disk read/write/positioning failure, or a file that
	// could not be opened or created.
	ErrIO = errors.New("catalogerr: io error")

	// ErrFormat marks on-disk data that violates the record layout: a
	// missing/garbled signature, an impossible dataLen, and the like.
	ErrFormat = errors.New("catalogerr: format error")

	// ErrValidation marks a caller-visible rule violation: empty or
	// duplicate name, name too long, unknown component, deleting a
	// referenced component, a type-rule violation, no files open.
	ErrValidation = errors.New("catalogerr: validation error")
)
