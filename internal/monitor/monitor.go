package monitor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/memscope/memscope/internal/snapshot"
)

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Logger *slog.Logger

	// StatusEvery is the number of frames between status lines; 0 disables them.
	StatusEvery int

	Now func() time.Time
}

// Status is a point-in-time copy of the frame counters.
type Status struct {
	Frames      uint64                         `json:"frames"`
	Built       uint64                         `json:"built"`
	Failed      uint64                         `json:"failed"`
	LastPlayers int                            `json:"lastPlayers"`
	MaxPlayers  int                            `json:"maxPlayers"`
	Failures    map[string]uint64              `json:"failures"`
	Skipped     map[snapshot.SkipReason]uint64 `json:"skipped"`
	Started     time.Time                      `json:"started"`
	LastFrame   time.Time                      `json:"lastFrame"`
}

// Service counts frames and reports status. Observe is called from the tick
// loop; Status may be called from anywhere.
type Service struct {
	deps Dependencies

	mu     sync.RWMutex
	status Status
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{
		deps: deps,
		status: Status{
			LastPlayers: -1,
			Failures:    map[string]uint64{},
			Skipped:     map[snapshot.SkipReason]uint64{},
			Started:     deps.Now(),
		},
	}
}

// Observe records the outcome of one frame. snap is nil when err is set.
func (s *Service) Observe(snap *snapshot.Snapshot, err error) {
	s.mu.Lock()
	st := &s.status
	st.Frames++
	st.LastFrame = s.deps.Now()

	if err != nil {
		st.Failed++
		st.Failures[err.Error()]++
	} else if snap != nil {
		st.Built++
		st.LastPlayers = len(snap.Players)
		st.MaxPlayers = max(st.MaxPlayers, st.LastPlayers)
		for reason, n := range snap.Scan.Skipped {
			st.Skipped[reason] += uint64(n)
		}
	}

	report := s.deps.StatusEvery > 0 && st.Frames%uint64(s.deps.StatusEvery) == 0
	s.mu.Unlock()

	if report {
		s.logStatus(err)
	}
}

func (s *Service) logStatus(lastErr error) {
	st := s.Status()

	reasons := lo.Keys(st.Skipped)
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	skipped := lo.Map(reasons, func(r snapshot.SkipReason, _ int) any {
		return slog.Uint64(string(r), st.Skipped[r])
	})

	args := []any{
		"frames", st.Frames,
		"built", st.Built,
		"failed", st.Failed,
		"players", st.LastPlayers,
		slog.Group("skipped", skipped...),
	}
	if lastErr != nil {
		args = append(args, "error", lastErr)
	}
	s.deps.Logger.Info("status", args...)
}

// Status returns a copy of the counters.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.status
	st.Failures = lo.Assign(s.status.Failures)
	st.Skipped = lo.Assign(s.status.Skipped)
	return st
}

// GetProgramStatus returns the status as indented JSON for operator output.
func (s *Service) GetProgramStatus() string {
	out, err := json.MarshalIndent(s.Status(), "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "%s"}`, err)
	}
	return string(out)
}

// LogSummary writes a final status line, typically on shutdown.
func (s *Service) LogSummary() {
	st := s.Status()
	end := st.LastFrame
	if end.IsZero() {
		end = st.Started
	}
	s.deps.Logger.Info("session summary",
		"frames", st.Frames,
		"built", st.Built,
		"failed", st.Failed,
		"maxPlayers", st.MaxPlayers,
		"uptime", end.Sub(st.Started).Round(time.Millisecond),
	)
}
