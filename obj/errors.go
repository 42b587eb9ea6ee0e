package obj

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen matches any *OpenError.
	ErrOpen = errors.New("obj: cannot open destination")
	// ErrWrite matches any *WriteError.
	ErrWrite = errors.New("obj: write failed")
)

// OpenError reports that the destination file could not be created or truncated.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

func (e *OpenError) Is(target error) bool { return target == ErrOpen }

// WriteError reports a failure after the destination was opened.
// Stage is the fragment being written, or sync/close/commit.
type WriteError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *WriteError) Error() string {
	switch e.Stage {
	case StageSync, StageClose, StageCommit:
		if e.Path == "" {
			return fmt.Sprintf("failed to %s: %v", e.Stage, e.Err)
		}
		return fmt.Sprintf("failed to %s %s: %v", e.Stage, e.Path, e.Err)
	}
	if e.Path == "" {
		return fmt.Sprintf("failed to write %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("failed to write %s to %s: %v", e.Stage, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }
