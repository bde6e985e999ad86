package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/memscope/memscope/internal/config"
	"github.com/memscope/memscope/internal/logging"
	"github.com/memscope/memscope/internal/memory"
	"github.com/memscope/memscope/internal/monitor"
	"github.com/memscope/memscope/internal/offsets"
	"github.com/memscope/memscope/internal/overlay"
	"github.com/memscope/memscope/internal/overlay/window"
	"github.com/memscope/memscope/internal/projection"
	"github.com/memscope/memscope/internal/resolver"
	"github.com/memscope/memscope/internal/runner"
	"github.com/memscope/memscope/internal/snapshot"
)

const (
	defaultDumpSize = 64
	maxDumpSize     = 4096
)

// attached is a process with everything needed to build snapshots.
type attached struct {
	proc    *memory.Process
	profile offsets.Profile
	builder *snapshot.Builder
	target  overlay.Target
	geom    overlay.Geometry
}

func (s *attached) close() {
	_ = s.proc.Release()
}

func (a *app) loadProfile() (offsets.Profile, error) {
	path := config.GetOffsetsConfig().Profile
	profile, err := offsets.Load(path)
	if err != nil {
		return offsets.Profile{}, err
	}
	a.log.Info("Loaded offset profile", "build", profile.Build, "module", profile.Module, "offsets", profile.Len())
	return profile, nil
}

func (a *app) attach() (*memory.Process, error) {
	tc := config.GetTargetConfig()
	a.log.Info("Attempting to attach", "process", tc.Process, "module", tc.Module)

	proc, err := memory.Attach(tc.Process, tc.Module)
	if err != nil {
		if errors.Is(err, memory.ErrAccessDenied) {
			a.log.Error("Access denied; run as Administrator (or with ptrace rights)", "error", err)
		}
		return nil, err
	}
	a.session.SetPid(proc.Pid())
	a.log.Info("Attached", "pid", proc.Pid(), "moduleBase", proc.ModuleBase().String())
	return proc, nil
}

// open attaches and wires a builder and target window.
func (a *app) open() (*attached, error) {
	profile, err := a.loadProfile()
	if err != nil {
		return nil, err
	}

	proc, err := a.attach()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(profile.Module, proc.ModuleName()) {
		a.log.Warn("Offset profile targets a different module", "profile", profile.Module, "attached", proc.ModuleName())
	}

	s := &attached{proc: proc, profile: profile}

	tc := config.GetTargetConfig()
	oc := config.GetOverlayConfig()
	s.target, err = overlay.NewTarget(overlay.TargetOptions{
		Pid:      proc.Pid(),
		Class:    tc.WindowClass,
		Titles:   tc.WindowTitles,
		Fallback: overlay.Geometry{Width: oc.Width, Height: oc.Height},
	})
	if err != nil {
		s.close()
		return nil, fmt.Errorf("finding target window: %w", err)
	}
	s.geom, _ = s.target.Geometry()
	a.log.Info("Target window", "geometry", s.geom.String())

	s.builder, err = a.newBuilder(proc, profile)
	if err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (a *app) newBuilder(proc *memory.Process, profile offsets.Profile) (*snapshot.Builder, error) {
	lc := config.GetLayoutConfig()
	pc := config.GetProjectionConfig()
	sc := config.GetSnapshotConfig()

	mapping, err := projection.ParseMapping(pc.Mapping)
	if err != nil {
		return nil, err
	}

	var w io.Writer = a.out
	if a.logFile != nil {
		w = a.logFile
	}
	tickLog := logging.NewTickLogger(logging.NewTextZerolog(w, config.GetLogConfig().Level, "snapshot"))

	return snapshot.New(proc, proc.ModuleBase(), profile,
		snapshot.WithLogger(tickLog),
		snapshot.WithLayout(resolver.Layout{
			ChunkMask:     lc.ChunkMask,
			ChunkShift:    lc.ChunkShift,
			SlotMask:      lc.SlotMask,
			PointerStride: lc.PointerStride,
			ListHeader:    lc.ListHeader,
			MaxSlots:      lc.MaxSlots,
		}),
		snapshot.WithProjector(projection.Projector{NearClip: pc.NearClip, Mapping: mapping}),
		snapshot.WithName(sc.NameMaxLength, sc.FallbackName),
		snapshot.WithHealthRange(sc.MinHealth, sc.MaxHealth),
	)
}

func (a *app) runLoop(ctx context.Context, mode string) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer s.close()

	loop := config.GetLoopConfig()
	mon := monitor.NewService(monitor.Dependencies{
		Logger:      a.log,
		StatusEvery: loop.StatusEvery,
	})
	defer func() {
		mon.LogSummary()
		fmt.Fprintln(a.out, mon.GetProgramStatus())
	}()

	r := runner.New(runner.Dependencies{
		Target:   s.target,
		Builder:  s.builder,
		Observer: mon,
		Logger:   a.log,
		Advance:  a.session.Advance,
	}, s.geom)

	switch mode {
	case "headless":
		a.log.Info("Running headless", "pacing", loop.Pacing)
		err := r.Run(ctx, loop.Pacing)
		if errors.Is(err, runner.ErrTargetGone) {
			return nil
		}
		return err

	case "overlay":
		oc := config.GetOverlayConfig()
		opts := window.Options{
			Title:   AppName,
			TPS:     oc.TPS,
			ExitKey: oc.ExitKey,
			Initial: s.geom,
		}
		w, err := window.New(r, overlay.NewPresenter(oc.DebugShapes), opts, a.log)
		if err != nil {
			return fmt.Errorf("creating overlay: %w", err)
		}
		fmt.Fprintf(a.out, "Overlay active - press %s to exit\n", oc.ExitKey)
		return w.Run(opts)

	default:
		return fmt.Errorf("unknown loop mode %q (want overlay or headless)", mode)
	}
}

func (a *app) snapshot() error {
	s, err := a.open()
	if err != nil {
		return err
	}
	defer s.close()

	snap, err := s.builder.Build(s.geom.Width, s.geom.Height)
	if err != nil {
		return err
	}
	renderSnapshot(a.out, snap)
	return nil
}

func renderSnapshot(w io.Writer, snap *snapshot.Snapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%d players (%d enemies), local team %d, %dx%d",
		len(snap.Players), len(snap.Enemies()), snap.Local.Team, snap.Width, snap.Height))
	t.AppendHeader(table.Row{"Slot", "Name", "Team", "Health", "Armor", "Position", "Screen", "Enemy", "Pawn"})
	for _, p := range snap.Players {
		t.AppendRow(table.Row{
			p.Slot,
			p.Name,
			p.Team,
			p.Health,
			p.Armor,
			fmt.Sprintf("%.1f %.1f %.1f", p.Position.X, p.Position.Y, p.Position.Z),
			fmt.Sprintf("%.0f,%.0f", p.Screen.X, p.Screen.Y),
			snap.IsEnemy(p),
			p.Pawn.String(),
		})
	}

	skipped := 0
	for _, n := range snap.Scan.Skipped {
		skipped += n
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "", "skipped", skipped})
	t.Render()
}

func (a *app) offsets() error {
	profile, err := a.loadProfile()
	if err != nil {
		return err
	}
	renderProfile(a.out, profile)
	return nil
}

func renderProfile(w io.Writer, p offsets.Profile) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("build %s, module %s", p.Build, p.Module))
	t.AppendHeader(table.Row{"#", "Name", "Offset"})
	for i, name := range p.Names() {
		t.AppendRow(table.Row{i + 1, name, fmt.Sprintf("0x%X", p.Get(name))})
	}
	t.Render()
}

func (a *app) show(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: show <addr|base+off> [size]")
	}

	proc, err := a.attach()
	if err != nil {
		return err
	}
	defer proc.Release()

	addr, err := parseAddress(args[0], proc.ModuleBase())
	if err != nil {
		return err
	}
	size := defaultDumpSize
	if len(args) > 1 {
		if size, err = parseSize(args[1]); err != nil {
			return err
		}
	}

	buf := make([]byte, size)
	if err := proc.ReadAt(addr, buf); err != nil {
		return fmt.Errorf("reading %d bytes at %s: %w", size, addr, err)
	}
	memory.HexDump(a.out, buf, addr)
	return nil
}

// parseAddress accepts an absolute address or "base", "base+off", "base-off"
// relative to the module base. Numbers use Go integer literal syntax.
func parseAddress(s string, base memory.Address) (memory.Address, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "base") {
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid address %q: %w", s, err)
		}
		return memory.Address(v), nil
	}

	rest := lower[len("base"):]
	if rest == "" {
		return base, nil
	}
	sign := rest[0]
	if sign != '+' && sign != '-' {
		return 0, fmt.Errorf("invalid address %q: want base+off or base-off", s)
	}
	off, err := strconv.ParseUint(rest[1:], 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset in %q: %w", s, err)
	}
	if sign == '-' {
		return memory.Address(uint64(base) - off), nil
	}
	return base.Add(off), nil
}

func parseSize(s string) (int, error) {
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n == 0 || n > maxDumpSize {
		return 0, fmt.Errorf("size %d out of range 1..%d", n, maxDumpSize)
	}
	return int(n), nil
}

// zerolog stamps records itself; keep them in UTC like the slog file lines.
func init() {
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
}
