// Package resolver turns entity handles read out of the target into absolute
// addresses by walking the target's two-level entity list.
//
// The list is an array of chunk pointers starting ListHeader bytes past the
// list base. Each chunk is an array of PointerStride-sized entity pointers.
// A handle selects a chunk with (h & ChunkMask) >> ChunkShift and a slot in
// that chunk with h & SlotMask.
package resolver

import (
	"github.com/memscope/memscope/internal/memory"
)

// Handle is an opaque 32-bit entity reference. It is not a pointer.
type Handle uint32

// Layout describes the entity list geometry for one target build.
type Layout struct {
	ChunkMask     uint32
	ChunkShift    uint
	SlotMask      uint32
	PointerStride uint64
	ListHeader    uint64

	// MaxSlots bounds the controller scan.
	MaxSlots int
}

// DefaultLayout is 512 entries per chunk, 8-byte pointers, a 16-byte header
// and 64 player slots.
func DefaultLayout() Layout {
	return Layout{
		ChunkMask:     0x7FFF,
		ChunkShift:    9,
		SlotMask:      0x1FF,
		PointerStride: 8,
		ListHeader:    16,
		MaxSlots:      64,
	}
}

// Split decomposes h into its chunk and slot indices.
func (l Layout) Split(h Handle) (chunk, slot uint32) {
	return (uint32(h) & l.ChunkMask) >> l.ChunkShift, uint32(h) & l.SlotMask
}

// ResolveHandle resolves h against the entity list at entityList. It returns
// 0 when either indirection reads zero or fails; an empty slot and an
// unreadable one look the same.
func ResolveHandle(src memory.Source, entityList memory.Address, layout Layout, h Handle) memory.Address {
	chunk, slot := layout.Split(h)

	chunkPtr := memory.ReadValue[memory.Address](src, entityList.Add(layout.PointerStride*uint64(chunk)+layout.ListHeader))
	if chunkPtr.IsNull() {
		return 0
	}
	return memory.ReadValue[memory.Address](src, chunkPtr.Add(layout.PointerStride*uint64(slot)))
}

// Resolver binds a memory source to one entity list.
type Resolver struct {
	src        memory.Source
	entityList memory.Address
	layout     Layout
}

// New returns a Resolver for the list at moduleBase+entityListOffset. The
// list base itself is used as is, not dereferenced.
func New(src memory.Source, moduleBase memory.Address, entityListOffset uint64, layout Layout) *Resolver {
	return &Resolver{
		src:        src,
		entityList: moduleBase.Add(entityListOffset),
		layout:     layout,
	}
}

func (r *Resolver) ResolveHandle(h Handle) memory.Address {
	return ResolveHandle(r.src, r.entityList, r.layout, h)
}

// ReadHandle reads the handle stored at addr. A zero handle or a failed read
// both yield 0.
func (r *Resolver) ReadHandle(addr memory.Address) Handle {
	return memory.ReadValue[Handle](r.src, addr)
}

// ResolveField reads the handle stored at owner+fieldOffset and resolves it.
func (r *Resolver) ResolveField(owner memory.Address, fieldOffset uint64) memory.Address {
	if owner.IsNull() {
		return 0
	}
	h := r.ReadHandle(owner.Add(fieldOffset))
	if h == 0 {
		return 0
	}
	return r.ResolveHandle(h)
}

// ResolveLocalPawn resolves the pawn handle held by the local controller.
func (r *Resolver) ResolveLocalPawn(controller memory.Address, pawnHandleOffset uint64) memory.Address {
	return r.ResolveField(controller, pawnHandleOffset)
}

// ResolveSlot resolves the entity at scan index i. Player slots are
// addressed exactly like handles, with the index as the handle value.
func (r *Resolver) ResolveSlot(i int) memory.Address {
	return r.ResolveHandle(Handle(i))
}

func (r *Resolver) EntityList() memory.Address {
	return r.entityList
}
