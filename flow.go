package bindable

import (
	"fmt"
	"slices"

	"github.com/tanema/gween/ease"
)

// FlowDirection selects the axis a Flow lays its children out along.
type FlowDirection uint8

const (
	FlowVertical   FlowDirection = iota // top to bottom
	FlowHorizontal                      // left to right
)

// FlowConfig configures a Flow.
type FlowConfig struct {
	Direction FlowDirection
	Spacing   float64 // gap between consecutive children
	Padding   float64 // inset from the flow's own origin

	// FadeDuration, in seconds, fades new children in from transparent.
	// Zero shows them immediately.
	FadeDuration float32
	// SlideDuration, in seconds, slides existing children to their new
	// position when the layout changes. New children are placed directly.
	// Zero snaps every child into place.
	SlideDuration float32
	// Ease is the easing function for fades and slides. Defaults to
	// ease.OutQuad.
	Ease ease.TweenFunc
}

// Flow is a container node that mirrors a List: one child node per item, in
// list order, laid out along one axis. The factory builds the node for an
// item; nodes of removed items are disposed.
type Flow[T comparable] struct {
	Node *Node

	cfg     FlowConfig
	factory func(T) *Node
	list    *List[T]
	sub     *Subscription
	items   []T // parallel to Node.children
	tweens  []*TweenGroup
	slides  map[*Node]slide
	fresh   []*Node // built since the last layout
}

// slide is a running position tween and the point it heads for.
type slide struct {
	g    *TweenGroup
	x, y float64
}

// NewFlow creates an empty, unbound flow.
func NewFlow[T comparable](name string, cfg FlowConfig, factory func(T) *Node) *Flow[T] {
	if factory == nil {
		panic("bindable: nil flow factory")
	}
	if cfg.Ease == nil {
		cfg.Ease = ease.OutQuad
	}
	return &Flow[T]{
		Node:    NewNode(name),
		cfg:     cfg,
		factory: factory,
		slides:  make(map[*Node]slide),
	}
}

// Bind starts mirroring list, replacing any previous list. Existing contents
// are built immediately.
func (f *Flow[T]) Bind(list *List[T]) {
	if list == nil {
		panic(fmt.Sprintf("bindable: nil list bound to flow %q", f.Node.Name))
	}
	f.Unbind()
	f.clearChildren()
	f.list = list
	f.sub = list.Subscribe(f.onChange, true)
}

// Unbind stops mirroring. Children built so far stay in place.
func (f *Flow[T]) Unbind() {
	f.sub.Unsubscribe()
	f.sub = nil
	f.list = nil
}

// Items returns the items currently shown, in display order.
func (f *Flow[T]) Items() []T {
	return slices.Clone(f.items)
}

// NodeFor returns the child built for the first occurrence of item, or nil.
func (f *Flow[T]) NodeFor(item T) *Node {
	i := slices.Index(f.items, item)
	if i < 0 {
		return nil
	}
	return f.Node.ChildAt(i)
}

// Len returns the number of children shown.
func (f *Flow[T]) Len() int {
	return f.Node.NumChildren()
}

// Update advances running fades and slides. It satisfies Updater.
func (f *Flow[T]) Update(dt float32) {
	live := f.tweens[:0]
	for _, g := range f.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(f.tweens[len(live):])
	f.tweens = live
	for n, sl := range f.slides {
		if sl.g.Done {
			delete(f.slides, n)
		}
	}
}

// Dispose unbinds the flow and disposes its node tree.
func (f *Flow[T]) Dispose() {
	f.Unbind()
	f.items = nil
	f.tweens = nil
	clear(f.slides)
	f.Node.Dispose()
}

func (f *Flow[T]) onChange(e ChangeEvent[T]) {
	switch e.Action() {
	case ActionAdd:
		at := e.NewStartingIndex()
		if at == -1 {
			at = len(f.items)
		}
		for i, item := range e.NewItems() {
			f.insertAt(at+i, item)
		}

	case ActionRemove:
		f.removeItems(e.OldItems(), e.OldStartingIndex())

	case ActionReplace:
		at := e.OldStartingIndex()
		f.removeItems(e.OldItems(), at)
		for i, item := range e.NewItems() {
			f.insertAt(at+i, item)
		}

	case ActionMove:
		from := e.OldStartingIndex()
		if from == -1 {
			from = slices.Index(f.items, e.OldItems()[0])
		}
		moveItem(f.items, from, e.NewStartingIndex())
		f.Node.SetChildIndex(f.Node.ChildAt(from), e.NewStartingIndex())

	case ActionReset:
		f.clearChildren()
		if f.list != nil {
			for i, item := range f.list.Items() {
				f.insertAt(i, item)
			}
		}
	}
	f.layout()
}

func (f *Flow[T]) insertAt(index int, item T) {
	n := f.factory(item)
	if n == nil {
		panic(fmt.Sprintf("bindable: flow %q factory returned nil for %v", f.Node.Name, item))
	}
	f.items = slices.Insert(f.items, index, item)
	f.Node.AddChildAt(n, index)
	f.fresh = append(f.fresh, n)
	if f.cfg.FadeDuration > 0 {
		n.Alpha = 0
		f.tweens = append(f.tweens, TweenAlpha(n, 1, f.cfg.FadeDuration, f.cfg.Ease))
	}
}

// removeItems removes a run of items starting at index, or each item by
// value when index is -1.
func (f *Flow[T]) removeItems(items []T, index int) {
	for _, item := range items {
		i := index
		if i == -1 {
			i = slices.Index(f.items, item)
		}
		f.items = slices.Delete(f.items, i, i+1)
		n := f.Node.RemoveChildAt(i)
		delete(f.slides, n)
		n.Dispose()
	}
}

func (f *Flow[T]) clearChildren() {
	old := slices.Clone(f.Node.Children())
	f.Node.RemoveChildren()
	for _, c := range old {
		c.Dispose()
	}
	f.items = f.items[:0]
	f.tweens = f.tweens[:0]
	clear(f.slides)
	f.fresh = f.fresh[:0]
}

// layout positions children along the flow axis and sizes the flow node to
// fit them.
func (f *Flow[T]) layout() {
	pos := f.cfg.Padding
	var cross float64
	for i, c := range f.Node.Children() {
		if i > 0 {
			pos += f.cfg.Spacing
		}
		if f.cfg.Direction == FlowHorizontal {
			f.place(c, pos, f.cfg.Padding)
			pos += c.Width
			cross = max(cross, c.Height)
		} else {
			f.place(c, f.cfg.Padding, pos)
			pos += c.Height
			cross = max(cross, c.Width)
		}
	}
	clear(f.fresh)
	f.fresh = f.fresh[:0]
	end := pos + f.cfg.Padding
	side := cross + 2*f.cfg.Padding
	if f.cfg.Direction == FlowHorizontal {
		f.Node.Width, f.Node.Height = end, side
	} else {
		f.Node.Width, f.Node.Height = side, end
	}
}

// place moves c to (x, y), sliding it there when slides are enabled and c was
// already laid out.
func (f *Flow[T]) place(c *Node, x, y float64) {
	if f.cfg.SlideDuration <= 0 || slices.Contains(f.fresh, c) {
		c.X, c.Y = x, y
		return
	}
	sl, running := f.slides[c]
	if running && sl.x == x && sl.y == y {
		return
	}
	if running {
		sl.g.Done = true
	}
	if c.X == x && c.Y == y {
		delete(f.slides, c)
		return
	}
	g := TweenPosition(c, x, y, f.cfg.SlideDuration, f.cfg.Ease)
	f.slides[c] = slide{g: g, x: x, y: y}
	f.tweens = append(f.tweens, g)
}
