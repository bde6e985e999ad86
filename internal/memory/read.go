package memory

import (
	"bytes"
	"encoding/binary"
	"unicode/utf16"
)

// Source copies bytes out of an address space. ReadAt must fill buf
// completely or return an error; a partial copy is a failure.
type Source interface {
	ReadAt(addr Address, buf []byte) error
}

// Read copies sizeof(T) bytes from addr and decodes them as little-endian T.
// T must be a fixed-size type (numbers, bools, arrays and structs of those).
// The second result is false when the copy or the decode failed.
func Read[T any](src Source, addr Address) (T, bool) {
	var v T
	size := binary.Size(v)
	if src == nil || size <= 0 {
		return v, false
	}

	buf := make([]byte, size)
	if err := src.ReadAt(addr, buf); err != nil {
		return v, false
	}
	if _, err := binary.Decode(buf, binary.LittleEndian, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// ReadValue is Read with the failure folded into the zero value.
func ReadValue[T any](src Source, addr Address) T {
	v, _ := Read[T](src, addr)
	return v
}

// ReadArray copies count consecutive T values starting at addr.
// It returns an empty slice on any failure.
func ReadArray[T any](src Source, addr Address, count int) []T {
	if src == nil || count <= 0 {
		return []T{}
	}

	var zero T
	size := binary.Size(zero)
	if size <= 0 {
		return []T{}
	}

	buf := make([]byte, size*count)
	if err := src.ReadAt(addr, buf); err != nil {
		return []T{}
	}

	out := make([]T, count)
	if _, err := binary.Decode(buf, binary.LittleEndian, out); err != nil {
		return []T{}
	}
	return out
}

// ReadBoundedString reads maxLength bytes at addr and returns them up to the
// first NUL. ok is false only when the copy itself failed, so callers can
// tell an unreadable string from an empty one.
func ReadBoundedString(src Source, addr Address, maxLength int) (s string, ok bool) {
	if src == nil || maxLength <= 0 {
		return "", false
	}

	buf := make([]byte, maxLength)
	if err := src.ReadAt(addr, buf); err != nil {
		return "", false
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), true
}

// ReadBoundedWideString is the UTF-16LE counterpart of ReadBoundedString;
// maxLength counts code units, not bytes.
func ReadBoundedWideString(src Source, addr Address, maxLength int) (s string, ok bool) {
	if src == nil || maxLength <= 0 {
		return "", false
	}

	buf := make([]byte, 2*maxLength)
	if err := src.ReadAt(addr, buf); err != nil {
		return "", false
	}

	units := make([]uint16, 0, maxLength)
	for i := 0; i+1 < len(buf); i += 2 {
		u := binary.LittleEndian.Uint16(buf[i:])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units)), true
}
