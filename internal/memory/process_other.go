//go:build !windows && !linux

package memory

type osHandle struct{}

func openProcess(uint32) (osHandle, error) {
	return osHandle{}, ErrUnsupportedPlatform
}

func findModule(osHandle, uint32, string) (Address, error) {
	return 0, ErrUnsupportedPlatform
}

func (osHandle) valid() bool { return false }

func (osHandle) read(Address, []byte) error { return ErrUnsupportedPlatform }

func (osHandle) close() error { return nil }
