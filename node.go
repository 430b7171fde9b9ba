package bindable

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is not atomic: the scene tree is owned by the update context.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a retained scene tree element. Consumers such as Flow build and
// reorder nodes in response to list changes; Scene.Draw renders each node's
// Image at its accumulated position.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout (local, relative to Parent)
	X, Y          float64
	Width, Height float64

	// Visibility
	Alpha   float64
	Visible bool

	// Image is drawn at the node's world position when non-nil.
	Image *ebiten.Image

	// Metadata
	UserData any

	// Internal
	disposed bool
}

// NewNode creates a visible, opaque node with no image.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		Alpha:   1,
		Visible: true,
	}
}

// NewImageNode creates a node that draws img, sized to its bounds.
func NewImageNode(name string, img *ebiten.Image) *Node {
	n := NewNode(name)
	n.Image = img
	if img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	}
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child != nil && child.Parent == n {
		n.removeChildByPtr(child)
		child.Parent = nil
	}
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("bindable: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("bindable: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("bindable: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("bindable: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("bindable: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("bindable: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("bindable: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	moveItem(n.children, oldIndex, index)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
