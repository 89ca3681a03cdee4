package mclog

import (
	"fmt"

	"github.com/mclog/mclog-go/internal/logfinder"
)

// Sentinel errors.
var (
	// ErrRootNotFound is returned when the data root does not exist.
	ErrRootNotFound = logfinder.ErrRootNotFound

	// ErrNoSources is returned when the data root has no source directories.
	ErrNoSources = logfinder.ErrNoSources
)

// FileError wraps a failure tied to one file or directory of a source.
type FileError struct {
	Op   string // "open", "read", "decode", "list"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
