//go:build linux

package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// On linux the handle is /proc/<pid>/mem held open; opening it performs the
// same ptrace access check process_vm_readv does, so a denied attach shows
// up at Attach instead of as silent zero reads.
type osHandle struct {
	pid int
	mem *os.File
}

func openProcess(pid uint32) (osHandle, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/mem", pid))
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return osHandle{}, fmt.Errorf("%w: %w", ErrAccessDenied, err)
		}
		return osHandle{}, err
	}
	return osHandle{pid: int(pid), mem: f}, nil
}

func findModule(_ osHandle, pid uint32, name string) (Address, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return parseModuleBase(f, name)
}

func (h osHandle) valid() bool {
	return h.pid != 0 && h.mem != nil
}

func (h osHandle) read(addr Address, buf []byte) error {
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(buf)}}

	n, err := unix.ProcessVMReadv(h.pid, local, remote, 0)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrShortRead
	}
	return nil
}

func (h osHandle) close() error {
	if h.mem == nil {
		return nil
	}
	return h.mem.Close()
}
