//go:build windows

package overlay

import (
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	getWindowTextW = user32.NewProc("GetWindowTextW")
)

type windowTarget struct {
	hwnd win.HWND
}

// NewTarget finds the target window by class and each title in turn, then
// falls back to the first visible, unowned, titled window of the process
// whose client area exceeds 100x100.
func NewTarget(opts TargetOptions) (Target, error) {
	hwnd := findByTitle(opts.Class, opts.Titles)
	if hwnd == 0 && opts.Pid != 0 {
		hwnd = findByPid(opts.Pid)
	}
	if hwnd == 0 {
		return nil, ErrWindowNotFound
	}

	t := &windowTarget{hwnd: hwnd}
	if g, ok := t.Geometry(); !ok || !g.Valid() {
		return nil, ErrInvalidGeometry
	}
	return t, nil
}

func findByTitle(class string, titles []string) win.HWND {
	cls, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	for _, title := range titles {
		t, err := windows.UTF16PtrFromString(title)
		if err != nil {
			continue
		}
		if hwnd := win.FindWindow(cls, t); hwnd != 0 {
			return hwnd
		}
	}
	return 0
}

func findByPid(pid uint32) win.HWND {
	var found win.HWND
	cb := windows.NewCallback(func(h windows.HWND, _ uintptr) uintptr {
		var owner uint32
		if _, err := windows.GetWindowThreadProcessId(h, &owner); err != nil || owner != pid {
			return 1
		}
		hwnd := win.HWND(h)
		if !windows.IsWindowVisible(h) || win.GetWindow(hwnd, win.GW_OWNER) != 0 {
			return 1
		}

		var rect win.RECT
		n := windowTextLen(h)
		if n > 0 && win.GetClientRect(hwnd, &rect) && rect.Right > 100 && rect.Bottom > 100 {
			found = hwnd
			return 0
		}
		return 1
	})
	// EnumWindows reports an error when the callback stops early.
	_ = windows.EnumWindows(cb, unsafe.Pointer(nil))
	return found
}

// windowTextLen returns the length of the window title, 0 when untitled.
func windowTextLen(h windows.HWND) int {
	var title [256]uint16
	n, _, _ := getWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&title[0])), uintptr(len(title)-1))
	return int(n)
}

func (t *windowTarget) Alive() bool {
	return windows.IsWindow(windows.HWND(t.hwnd))
}

// Geometry maps the client rect to screen coordinates.
func (t *windowTarget) Geometry() (Geometry, bool) {
	var rect win.RECT
	if !win.GetClientRect(t.hwnd, &rect) {
		return Geometry{}, false
	}
	var origin win.POINT
	if !win.ClientToScreen(t.hwnd, &origin) {
		return Geometry{}, false
	}
	return Geometry{
		X:      int(origin.X),
		Y:      int(origin.Y),
		Width:  int(rect.Right - rect.Left),
		Height: int(rect.Bottom - rect.Top),
	}, true
}
