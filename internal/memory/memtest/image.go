// Package memtest provides a fake target address space for tests.
package memtest

import (
	"encoding/binary"
	"fmt"

	"github.com/memscope/memscope/internal/memory"
)

// Image is a sparse byte-addressed memory image. Bytes never written are
// unmapped, and any read touching one fails the way a read of an invalid
// address in a real target would.
type Image struct {
	bytes map[memory.Address]byte
	reads int
}

var _ memory.Source = (*Image)(nil)

func New() *Image {
	return &Image{bytes: make(map[memory.Address]byte)}
}

// ReadAt implements memory.Source.
func (m *Image) ReadAt(addr memory.Address, buf []byte) error {
	m.reads++
	for i := range buf {
		b, ok := m.bytes[addr.Add(uint64(i))]
		if !ok {
			return fmt.Errorf("unmapped address %s", addr.Add(uint64(i)))
		}
		buf[i] = b
	}
	return nil
}

// Reads returns how many ReadAt calls the image has served.
func (m *Image) Reads() int {
	return m.reads
}

// Put maps data at addr.
func (m *Image) Put(addr memory.Address, data []byte) {
	for i, b := range data {
		m.bytes[addr.Add(uint64(i))] = b
	}
}

// PutValue maps the little-endian encoding of a fixed-size value at addr.
func (m *Image) PutValue(addr memory.Address, v any) {
	data, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		panic(fmt.Sprintf("memtest: encode %T: %v", v, err))
	}
	m.Put(addr, data)
}

func (m *Image) PutUint64(addr memory.Address, v uint64) { m.PutValue(addr, v) }
func (m *Image) PutUint32(addr memory.Address, v uint32) { m.PutValue(addr, v) }
func (m *Image) PutInt32(addr memory.Address, v int32)   { m.PutValue(addr, v) }
func (m *Image) PutBool(addr memory.Address, v bool)     { m.PutValue(addr, v) }

// PutPointer maps an 8-byte pointer to target at addr.
func (m *Image) PutPointer(addr, target memory.Address) {
	m.PutUint64(addr, uint64(target))
}

// PutString maps s followed by a NUL, padded with zeros to size bytes
// when size is larger.
func (m *Image) PutString(addr memory.Address, s string, size int) {
	data := append([]byte(s), 0)
	for len(data) < size {
		data = append(data, 0)
	}
	m.Put(addr, data)
}

