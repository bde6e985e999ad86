package snapshot

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/memscope/memscope/internal/memory"
	"github.com/memscope/memscope/internal/offsets"
	"github.com/memscope/memscope/internal/projection"
	"github.com/memscope/memscope/internal/resolver"
)

// RequiredOffsets are the profile fields Build reads.
var RequiredOffsets = []string{
	offsets.EntityList,
	offsets.ViewMatrix,
	offsets.LocalPlayerController,
	offsets.ControllerIsAlive,
	offsets.ControllerPlayerPawn,
	offsets.ControllerName,
	offsets.PawnPosition,
	offsets.PawnHealth,
	offsets.PawnArmor,
	offsets.PawnTeam,
	offsets.PawnIsScoped,
	offsets.PawnIsDefusing,
}

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Builder.
type Option func(*config)

type config struct {
	logger       Logger
	layout       resolver.Layout
	projector    projection.Projector
	nameMax      int
	fallbackName string
	minHealth    int32
	maxHealth    int32
	onTransition func(from, to State)
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithLayout overrides the entity list geometry.
func WithLayout(l resolver.Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithProjector overrides the near clip and screen mapping.
func WithProjector(p projection.Projector) Option {
	return func(c *config) {
		c.projector = p
	}
}

// WithName sets the name read limit in bytes and the fallback used when the
// name is unreadable or empty.
func WithName(maxLength int, fallback string) Option {
	return func(c *config) {
		c.nameMax = maxLength
		c.fallbackName = fallback
	}
}

// WithHealthRange sets the inclusive range of health values accepted as live.
func WithHealthRange(min, max int32) Option {
	return func(c *config) {
		c.minHealth = min
		c.maxHealth = max
	}
}

// OnTransition registers a callback run on every state change.
func OnTransition(fn func(from, to State)) Option {
	return func(c *config) {
		c.onTransition = fn
	}
}

type fieldOffsets struct {
	viewMatrix      uint64
	localController uint64
	isAlive         uint64
	pawnHandle      uint64
	name            uint64
	position        uint64
	health          uint64
	armor           uint64
	team            uint64
	scoped          uint64
	defusing        uint64
}

// Builder produces one Snapshot per call to Build. It is not safe for
// concurrent use; the tick loop owns it.
type Builder struct {
	src        memory.Source
	moduleBase memory.Address
	resolver   *resolver.Resolver
	off        fieldOffsets
	cfg        config
	ins        *instruments

	state State

	// diagnostics only; never feeds into a snapshot
	lastLocalErr error
	lastPlayers  int
}

// New returns a Builder reading through src. The profile must contain every
// name in RequiredOffsets.
func New(src memory.Source, moduleBase memory.Address, profile offsets.Profile, opts ...Option) (*Builder, error) {
	cfg := config{
		logger:       nopLogger{},
		layout:       resolver.DefaultLayout(),
		projector:    projection.NewProjector(),
		nameMax:      32,
		fallbackName: "Player",
		minHealth:    1,
		maxHealth:    100,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := profile.Require(RequiredOffsets...); err != nil {
		return nil, err
	}
	if cfg.layout.MaxSlots <= 0 {
		return nil, fmt.Errorf("invalid slot bound %d", cfg.layout.MaxSlots)
	}

	ins, err := newInstruments()
	if err != nil {
		return nil, err
	}

	return &Builder{
		src:        src,
		moduleBase: moduleBase,
		resolver:   resolver.New(src, moduleBase, profile.Get(offsets.EntityList), cfg.layout),
		off: fieldOffsets{
			viewMatrix:      profile.Get(offsets.ViewMatrix),
			localController: profile.Get(offsets.LocalPlayerController),
			isAlive:         profile.Get(offsets.ControllerIsAlive),
			pawnHandle:      profile.Get(offsets.ControllerPlayerPawn),
			name:            profile.Get(offsets.ControllerName),
			position:        profile.Get(offsets.PawnPosition),
			health:          profile.Get(offsets.PawnHealth),
			armor:           profile.Get(offsets.PawnArmor),
			team:            profile.Get(offsets.PawnTeam),
			scoped:          profile.Get(offsets.PawnIsScoped),
			defusing:        profile.Get(offsets.PawnIsDefusing),
		},
		cfg:         cfg,
		ins:         ins,
		lastPlayers: -1,
	}, nil
}

// State reports where the builder is in the current tick. Between calls to
// Build it is always StateIdle.
func (b *Builder) State() State {
	return b.state
}

// Build reads one snapshot for a width x height surface. A failed local
// refresh aborts the tick with ErrNoLocalController or ErrNoLocalPawn; every
// other read failure only drops the affected slot.
func (b *Builder) Build(width, height int) (*Snapshot, error) {
	start := time.Now()
	defer b.transition(StateIdle)

	b.transition(StateLocalRefresh)
	local, err := b.refreshLocal()
	b.noteLocal(err)
	if err != nil {
		b.record(start, outcomeFor(err), 0)
		return nil, err
	}

	b.transition(StateSlotScan)
	snap := &Snapshot{
		Local:  local,
		Width:  width,
		Height: height,
		Scan:   ScanStats{Skipped: map[SkipReason]int{}},
	}
	for i := 0; i < b.cfg.layout.MaxSlots; i++ {
		p, reason := b.readSlot(i, local, width, height)
		if reason == SkipUnresolved {
			snap.Scan.Skipped[reason]++
			continue
		}
		snap.Scan.Controllers++
		if reason != "" {
			snap.Scan.Skipped[reason]++
			continue
		}
		snap.Players = append(snap.Players, p)
	}

	b.transition(StateDone)
	b.notePlayers(snap)
	b.record(start, "ok", len(snap.Players))
	for reason, n := range snap.Scan.Skipped {
		b.ins.skipped.Add(context.Background(), int64(n),
			metric.WithAttributes(attribute.String("reason", string(reason))))
	}
	return snap, nil
}

func (b *Builder) refreshLocal() (LocalState, error) {
	var local LocalState

	local.Controller = memory.ReadValue[memory.Address](b.src, b.moduleBase.Add(b.off.localController))
	if local.Controller.IsNull() {
		return LocalState{}, ErrNoLocalController
	}

	local.Pawn = b.resolver.ResolveLocalPawn(local.Controller, b.off.pawnHandle)
	if local.Pawn.IsNull() {
		return LocalState{}, ErrNoLocalPawn
	}

	local.Team = memory.ReadValue[int32](b.src, local.Pawn.Add(b.off.team))
	local.ViewMatrix = memory.ReadValue[projection.Matrix4x4](b.src, b.moduleBase.Add(b.off.viewMatrix))
	return local, nil
}

// readSlot returns the player at scan index i, or the reason there is none.
func (b *Builder) readSlot(i int, local LocalState, width, height int) (PlayerSnapshot, SkipReason) {
	controller := b.resolver.ResolveSlot(i)
	if controller.IsNull() {
		return PlayerSnapshot{}, SkipUnresolved
	}
	if controller == local.Controller {
		return PlayerSnapshot{}, SkipLocal
	}

	if alive := memory.ReadValue[bool](b.src, controller.Add(b.off.isAlive)); !alive {
		return PlayerSnapshot{}, SkipDead
	}

	pawn := b.resolver.ResolveField(controller, b.off.pawnHandle)
	if pawn.IsNull() {
		return PlayerSnapshot{}, SkipNoPawn
	}

	p := PlayerSnapshot{
		Slot:       i,
		Controller: controller,
		Pawn:       pawn,
		Position:   memory.ReadValue[projection.Vector3](b.src, pawn.Add(b.off.position)),
	}

	screen, ok := b.cfg.projector.Project(p.Position, local.ViewMatrix, width, height)
	if !ok {
		return PlayerSnapshot{}, SkipOffscreen
	}
	p.Screen = screen

	p.Health = memory.ReadValue[int32](b.src, pawn.Add(b.off.health))
	if p.Health < b.cfg.minHealth || p.Health > b.cfg.maxHealth {
		return PlayerSnapshot{}, SkipHealth
	}

	p.Armor = memory.ReadValue[int32](b.src, pawn.Add(b.off.armor))
	p.Team = memory.ReadValue[int32](b.src, pawn.Add(b.off.team))
	p.Name = b.readName(controller)
	p.Scoped = memory.ReadValue[bool](b.src, pawn.Add(b.off.scoped))
	p.Defusing = memory.ReadValue[bool](b.src, pawn.Add(b.off.defusing))

	// no occlusion test is made; every projected player counts as visible
	p.Visible = true
	p.Valid = true
	return p, ""
}

func (b *Builder) readName(controller memory.Address) string {
	name, ok := memory.ReadBoundedString(b.src, controller.Add(b.off.name), b.cfg.nameMax)
	if !ok || name == "" {
		return b.cfg.fallbackName
	}
	return name
}

func (b *Builder) transition(to State) {
	from := b.state
	b.state = to
	if b.cfg.onTransition != nil && from != to {
		b.cfg.onTransition(from, to)
	}
}

// noteLocal logs local refresh failures once per change of outcome.
func (b *Builder) noteLocal(err error) {
	if err == b.lastLocalErr {
		return
	}
	switch {
	case err != nil:
		b.cfg.logger.Error("local player unreadable", "error", err)
	case b.lastLocalErr != nil:
		b.cfg.logger.Info("local player readable again")
	}
	b.lastLocalErr = err
}

func (b *Builder) notePlayers(snap *Snapshot) {
	if len(snap.Players) == b.lastPlayers {
		return
	}
	b.cfg.logger.Info("valid player count changed",
		"players", len(snap.Players),
		"controllers", snap.Scan.Controllers,
		"previous", b.lastPlayers,
	)
	b.lastPlayers = len(snap.Players)
}

func (b *Builder) record(start time.Time, outcome string, players int) {
	ctx := context.Background()
	b.ins.ticks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	b.ins.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000)
	if outcome == "ok" {
		b.ins.players.Record(ctx, int64(players))
	}
}

func outcomeFor(err error) string {
	switch err {
	case ErrNoLocalController:
		return "no_local_controller"
	case ErrNoLocalPawn:
		return "no_local_pawn"
	default:
		return "error"
	}
}
