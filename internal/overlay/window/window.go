// Package window shows the overlay as a transparent ebiten window.
package window

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/memscope/memscope/internal/overlay"
)

// Options configures the overlay window.
type Options struct {
	Title   string
	TPS     int
	ExitKey string
	Initial overlay.Geometry
}

// Window is a click-through ebiten window laid over the target. It follows
// the target geometry and draws each frame through a Presenter.
type Window struct {
	source    overlay.FrameSource
	presenter overlay.Presenter
	log       *slog.Logger

	exitKey ebiten.Key
	geom    overlay.Geometry
	frame   overlay.Frame
}

// New validates the options and prepares a window. Nothing is shown
// until Run.
func New(source overlay.FrameSource, presenter overlay.Presenter, opts Options, log *slog.Logger) (*Window, error) {
	if !opts.Initial.Valid() {
		return nil, overlay.ErrInvalidGeometry
	}
	key, err := ParseKey(opts.ExitKey)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Window{
		source:    source,
		presenter: presenter,
		log:       log,
		exitKey:   key,
		geom:      opts.Initial,
	}, nil
}

// ParseKey maps an ebiten key name such as "End" or "F10" to a key.
func ParseKey(name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid exit key %q: %w", name, err)
	}
	return k, nil
}

// Run opens the window and blocks until the exit key is pressed or the
// target disappears.
func (w *Window) Run(opts Options) error {
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetWindowPosition(w.geom.X, w.geom.Y)
	ebiten.SetWindowSize(w.geom.Width, w.geom.Height)
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}

	err := ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	})
	if err != nil {
		return fmt.Errorf("overlay window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(w.exitKey) {
		w.log.Info("Exit key pressed", "key", w.exitKey.String())
		return ebiten.Termination
	}

	frame, ok := w.source.Tick()
	if !ok {
		w.log.Info("Target window gone, closing overlay")
		return ebiten.Termination
	}
	w.frame = frame

	if g := frame.Geometry; g.Valid() && g != w.geom {
		w.log.Debug("Updating overlay position", "from", w.geom.String(), "to", g.String())
		ebiten.SetWindowPosition(g.X, g.Y)
		ebiten.SetWindowSize(g.Width, g.Height)
		w.geom = g
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.presenter.Present(&imageSurface{dst: screen}, w.frame.Snapshot, w.geom.Width, w.geom.Height)
}

// Layout implements ebiten.Game. The logical screen is the window size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// imageSurface draws onto an ebiten image.
type imageSurface struct {
	dst *ebiten.Image
}

func (s *imageSurface) BeginFrame() {
	s.dst.Clear()
}

func (s *imageSurface) DrawLine(x1, y1, x2, y2 float32, c color.RGBA, thickness float32) {
	vector.StrokeLine(s.dst, x1, y1, x2, y2, thickness, c, true)
}

func (s *imageSurface) DrawFilledRect(x, y, w, h float32, c color.RGBA) {
	vector.DrawFilledRect(s.dst, x, y, w, h, c, false)
}

func (s *imageSurface) DrawFilledCircle(x, y, r float32, c color.RGBA) {
	vector.DrawFilledCircle(s.dst, x, y, r, c, true)
}

// DrawText uses the debug font, which is always white.
func (s *imageSurface) DrawText(x, y float32, str string, _ color.RGBA) {
	ebitenutil.DebugPrintAt(s.dst, str, int(x), int(y))
}

func (s *imageSurface) EndFrame() {}
