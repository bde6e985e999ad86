package snapshot

import "fmt"

// State is the builder's position within one tick.
type State int

const (
	StateIdle State = iota
	StateLocalRefresh
	StateSlotScan
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocalRefresh:
		return "local-refresh"
	case StateSlotScan:
		return "slot-scan"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
