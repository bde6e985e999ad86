//go:build !windows

package overlay

import (
	"github.com/shirou/gopsutil/v3/process"
)

// fixedTarget reports a configured geometry and stays alive while the pid
// exists. Window lookup is only implemented on Windows.
type fixedTarget struct {
	pid  int32
	geom Geometry

	exists func(pid int32) (bool, error)
}

// NewTarget returns a Target with the fallback geometry.
func NewTarget(opts TargetOptions) (Target, error) {
	if !opts.Fallback.Valid() {
		return nil, ErrInvalidGeometry
	}
	return &fixedTarget{
		pid:    int32(opts.Pid),
		geom:   opts.Fallback,
		exists: process.PidExists,
	}, nil
}

func (t *fixedTarget) Alive() bool {
	if t.pid == 0 {
		return false
	}
	ok, err := t.exists(t.pid)
	return err == nil && ok
}

func (t *fixedTarget) Geometry() (Geometry, bool) {
	return t.geom, true
}
