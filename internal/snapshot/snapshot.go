// Package snapshot builds the per-tick view of remote players: it refreshes
// the local player, walks the controller slots, resolves each pawn and keeps
// the ones that are alive, on screen and carry a plausible health value.
package snapshot

import (
	"errors"

	"github.com/memscope/memscope/internal/memory"
	"github.com/memscope/memscope/internal/projection"
)

var (
	// ErrNoLocalController is returned when the local controller pointer reads zero.
	ErrNoLocalController = errors.New("no local player controller")

	// ErrNoLocalPawn is returned when the local controller's pawn handle does not resolve.
	ErrNoLocalPawn = errors.New("no local player pawn")
)

// PlayerSnapshot is one remote player as read during a single tick.
type PlayerSnapshot struct {
	Slot       int
	Controller memory.Address
	Pawn       memory.Address

	Position projection.Vector3
	Screen   projection.Vector2

	Health int32
	Armor  int32
	Team   int32
	Name   string

	Scoped   bool
	Defusing bool
	Visible  bool
	Valid    bool
}

// LocalState is the local player and camera for one tick.
type LocalState struct {
	Controller memory.Address
	Pawn       memory.Address
	Team       int32
	ViewMatrix projection.Matrix4x4
}

// SkipReason says why a scanned slot produced no player.
type SkipReason string

const (
	SkipUnresolved SkipReason = "unresolved"
	SkipLocal      SkipReason = "local"
	SkipDead       SkipReason = "dead"
	SkipNoPawn     SkipReason = "no_pawn"
	SkipOffscreen  SkipReason = "not_visible"
	SkipHealth     SkipReason = "health"
)

// ScanStats counts what the slot scan saw.
type ScanStats struct {
	// Controllers is the number of slots that resolved to a controller,
	// the local one included.
	Controllers int
	Skipped     map[SkipReason]int
}

// Snapshot is the immutable result of one Build. Players are in ascending
// slot order.
type Snapshot struct {
	Local   LocalState
	Players []PlayerSnapshot
	Width   int
	Height  int
	Scan    ScanStats
}

// Enemies returns the players on a different team than the local player.
func (s *Snapshot) Enemies() []PlayerSnapshot {
	var out []PlayerSnapshot
	for _, p := range s.Players {
		if p.Team != s.Local.Team {
			out = append(out, p)
		}
	}
	return out
}

func (s *Snapshot) IsEnemy(p PlayerSnapshot) bool {
	return p.Team != s.Local.Team
}
