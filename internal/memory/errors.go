package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessNotFound is returned when no running process matches the requested name.
	ErrProcessNotFound = errors.New("process not found")

	// ErrAccessDenied is returned when the process exists but cannot be opened.
	// On Windows this usually means the caller is not elevated.
	ErrAccessDenied = errors.New("access denied")

	// ErrModuleNotFound is returned when the process has no loaded module with the requested name.
	ErrModuleNotFound = errors.New("module not found")

	// ErrProcessNotOpen is returned by reads through a released or never-attached process.
	ErrProcessNotOpen = errors.New("process not open")

	// ErrUnsupportedPlatform is returned by Attach on platforms without an accessor.
	ErrUnsupportedPlatform = errors.New("process memory access not supported on this platform")

	// ErrShortRead is returned when fewer bytes than requested were copied.
	ErrShortRead = errors.New("short read")
)

// AttachError describes a failed Attach.
type AttachError struct {
	Process string
	Module  string
	Err     error
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("attach %s!%s: %v", e.Process, e.Module, e.Err)
}

func (e *AttachError) Unwrap() error {
	return e.Err
}
