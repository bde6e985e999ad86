//go:build windows

package memory

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

const processAccess = windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE |
	windows.PROCESS_VM_OPERATION | windows.PROCESS_QUERY_INFORMATION

type osHandle struct {
	h windows.Handle
}

func openProcess(pid uint32) (osHandle, error) {
	h, err := windows.OpenProcess(processAccess, false, pid)
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return osHandle{}, fmt.Errorf("%w: OpenProcess(%d): %w", ErrAccessDenied, pid, err)
		}
		return osHandle{}, fmt.Errorf("OpenProcess(%d): %w", pid, err)
	}
	return osHandle{h: h}, nil
}

func findModule(_ osHandle, pid uint32, name string) (Address, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPMODULE|windows.TH32CS_SNAPMODULE32, pid)
	if err != nil {
		return 0, fmt.Errorf("CreateToolhelp32Snapshot: %w", err)
	}
	defer windows.CloseHandle(snapshot)

	var me windows.ModuleEntry32
	me.Size = uint32(unsafe.Sizeof(me))
	if err := windows.Module32First(snapshot, &me); err != nil {
		return 0, fmt.Errorf("Module32First: %w", err)
	}

	for {
		if strings.EqualFold(windows.UTF16ToString(me.Module[:]), name) {
			return Address(me.ModBaseAddr), nil
		}
		if err := windows.Module32Next(snapshot, &me); err != nil {
			break
		}
	}
	return 0, ErrModuleNotFound
}

func (h osHandle) valid() bool {
	return h.h != 0 && h.h != windows.InvalidHandle
}

func (h osHandle) read(addr Address, buf []byte) error {
	var n uintptr
	err := windows.ReadProcessMemory(h.h, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return err
	}
	if int(n) != len(buf) {
		return ErrShortRead
	}
	return nil
}

func (h osHandle) close() error {
	if !h.valid() {
		return nil
	}
	return windows.CloseHandle(h.h)
}
