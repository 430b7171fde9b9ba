package bindable

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R * c.A * 255),
		G: uint8(c.G * c.A * 255),
		B: uint8(c.B * c.A * 255),
		A: uint8(c.A * 255),
	}
}

// Updater is anything advanced once per frame by Scene.Update, such as a
// Flow or a TweenGroup. Updaters that also report Finished() true are
// dropped after their update.
type Updater interface {
	Update(dt float32)
}

type finisher interface {
	Finished() bool
}

// Scene owns the node tree and the update context that lists driving the
// tree should be owned by.
type Scene struct {
	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	root       *Node
	update     *ExecutionContext
	updaters   []Updater
	updateFunc func() error
	op         ebiten.DrawImageOptions
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{
		root:   NewNode("root"),
		update: NewExecutionContext(RoleUpdate),
	}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// UpdateContext returns the context that is active during Update. Attach it
// to lists with List.SetOwner to have debug mode catch mutations from
// elsewhere.
func (s *Scene) UpdateContext() *ExecutionContext {
	return s.update
}

// SetUpdateFunc sets a callback run at the start of every Update, inside the
// update context.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Track registers u to be advanced every Update.
func (s *Scene) Track(u Updater) {
	s.updaters = append(s.updaters, u)
}

// Untrack removes u. No-op if u is not tracked.
func (s *Scene) Untrack(u Updater) {
	for i, v := range s.updaters {
		if v == u {
			copy(s.updaters[i:], s.updaters[i+1:])
			s.updaters[len(s.updaters)-1] = nil
			s.updaters = s.updaters[:len(s.updaters)-1]
			return
		}
	}
}

// Update runs one frame of logic at the current ticks per second.
func (s *Scene) Update() error {
	return s.step(float32(1.0 / float64(ebiten.TPS())))
}

func (s *Scene) step(dt float32) error {
	exit := s.update.Enter()
	defer exit()

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	live := s.updaters[:0]
	for _, u := range s.updaters {
		u.Update(dt)
		if f, ok := u.(finisher); ok && f.Finished() {
			continue
		}
		live = append(live, u)
	}
	clear(s.updaters[len(live):])
	s.updaters = live
	return nil
}

// Draw renders every visible node image in tree order.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.drawNode(screen, s.root, 0, 0, 1)
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node, x, y, alpha float64) {
	if !n.Visible {
		return
	}
	x += n.X
	y += n.Y
	alpha *= n.Alpha
	if n.Image != nil && alpha > 0 {
		s.op.GeoM.Reset()
		s.op.GeoM.Translate(x, y)
		s.op.ColorScale.Reset()
		s.op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(n.Image, &s.op)
	}
	for _, c := range n.children {
		s.drawNode(screen, c, x, y, alpha)
	}
}

// SetDebugMode enables or disables package debug mode (see SetDebugMode).
func (s *Scene) SetDebugMode(enabled bool) {
	SetDebugMode(enabled)
}

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a window and drives scene until the window closes or an update
// returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, w: cfg.Width, h: cfg.Height})
}

type game struct {
	scene *Scene
	w, h  int
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.w, g.h
}
