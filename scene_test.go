package bindable

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	require.NotNil(t, s.Root())
	assert.Equal(t, "root", s.Root().Name)
	assert.Equal(t, RoleUpdate, s.UpdateContext().Role())
	assert.False(t, s.UpdateContext().Active())
}

func TestSceneUpdate_EntersContext(t *testing.T) {
	s := NewScene()
	l := NewList[int]()
	l.SetOwner(s.UpdateContext())
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	s.SetUpdateFunc(func() error {
		return l.Add(1)
	})
	require.NoError(t, s.Update())
	assert.Equal(t, []int{1}, l.Items())
	assert.False(t, s.UpdateContext().Active())
	assert.Panics(t, func() { _ = l.Add(2) }, "mutation outside Update is caught in debug mode")
}

func TestSceneUpdate_ReturnsError(t *testing.T) {
	s := NewScene()
	boom := errors.New("boom")
	s.SetUpdateFunc(func() error { return boom })
	assert.ErrorIs(t, s.Update(), boom)
	assert.False(t, s.UpdateContext().Active())
}

func TestSceneTrack(t *testing.T) {
	s := NewScene()
	n := NewNode("n")
	n.Alpha = 0
	g := TweenAlpha(n, 1, 0.5, ease.Linear)
	s.Track(g)

	l := NewList[string]()
	f := NewFlow("flow", FlowConfig{FadeDuration: 0.5}, labelNode)
	f.Bind(l)
	s.Track(f)

	require.NoError(t, s.step(0.25))
	require.NoError(t, s.step(0.25))
	assert.InDelta(t, 1.0, n.Alpha, 0.01)
	assert.Len(t, s.updaters, 1, "finished tween dropped, flow kept")

	s.Untrack(f)
	s.Untrack(f)
	assert.Empty(t, s.updaters)
}

func TestSceneDraw(t *testing.T) {
	s := NewScene()
	s.ClearColor = Color{R: 0.1, G: 0.1, B: 0.1, A: 1}

	l := NewList("a", "b")
	f := NewFlow("flow", FlowConfig{Spacing: 2}, func(string) *Node {
		return NewImageNode("swatch", ebiten.NewImage(8, 8))
	})
	f.Bind(l)
	s.Root().AddChild(f.Node)

	hidden := NewImageNode("hidden", ebiten.NewImage(4, 4))
	hidden.Visible = false
	s.Root().AddChild(hidden)

	assert.Equal(t, 10.0, f.Node.ChildAt(1).Y)
	screen := ebiten.NewImage(64, 64)
	assert.NotPanics(t, func() { s.Draw(screen) })
}

func TestColorToRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 1}.toRGBA()
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(127), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(255), c.A)
}
