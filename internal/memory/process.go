package memory

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Process is an open session on an external process: its pid, an OS handle
// and the base address of one loaded module. Every read is a fresh copy out
// of the target; nothing is cached.
type Process struct {
	name   string
	module string
	pid    uint32
	base   Address
	handle osHandle
}

// Attach finds a running process by name, opens it and resolves the base of
// the named module. Both names are matched exactly, ignoring case.
func Attach(processName, moduleName string) (*Process, error) {
	fail := func(err error) (*Process, error) {
		return nil, &AttachError{Process: processName, Module: moduleName, Err: err}
	}

	pid, err := findProcess(processName)
	if err != nil {
		return fail(err)
	}

	h, err := openProcess(pid)
	if err != nil {
		return fail(err)
	}

	base, err := findModule(h, pid, moduleName)
	if err != nil {
		_ = h.close()
		return fail(err)
	}

	return &Process{
		name:   processName,
		module: moduleName,
		pid:    pid,
		base:   base,
		handle: h,
	}, nil
}

func findProcess(name string) (uint32, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, fmt.Errorf("enumerate processes: %w", err)
	}

	for _, p := range procs {
		n, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(n, name) {
			return uint32(p.Pid), nil
		}
	}
	return 0, ErrProcessNotFound
}

// ReadAt implements Source. Reads through an invalid process fail with
// ErrProcessNotOpen and touch nothing.
func (p *Process) ReadAt(addr Address, buf []byte) error {
	if !p.IsValid() {
		return ErrProcessNotOpen
	}
	if len(buf) == 0 {
		return nil
	}
	return p.handle.read(addr, buf)
}

// IsValid reports whether pid, OS handle and module base are all set.
func (p *Process) IsValid() bool {
	return p != nil && p.pid != 0 && p.handle.valid() && p.base != 0
}

// Release closes the OS handle and resets the process to the invalid state.
// It is safe to call more than once.
func (p *Process) Release() error {
	if p == nil {
		return nil
	}
	err := p.handle.close()
	p.handle = osHandle{}
	p.pid = 0
	p.base = 0
	return err
}

func (p *Process) Pid() uint32 {
	return p.pid
}

// ModuleBase is the address the attached module was mapped at.
func (p *Process) ModuleBase() Address {
	return p.base
}

func (p *Process) ModuleName() string {
	return p.module
}

func (p *Process) Name() string {
	return p.name
}
