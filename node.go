package grasp

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter; grasp is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// Node implements WidgetNode, so any node with the right children can back a
// Button, and any node can be driven by a gesture processor.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node
	scene    *Scene // set on the scene root only

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed, refreshed by updateWorldTransform
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Size in local units. Rect and image nodes draw and hit-test over
	// (0,0)-(Width,Height).
	Width, Height float64

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Appearance
	Color Color
	image *ebiten.Image

	// Metadata
	UserData any
	EntityID uint32

	// Hit testing
	HitShape HitShape

	handlers [numEventTypes][numSources]EventHandler

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Interactable = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
// Containers are not hit-testable unless given a HitShape; their children
// are, and events bubble up to the container.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid color rectangle node.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewImage creates a node that draws img scaled to the node's size. The size
// starts as the image's pixel size.
func NewImage(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, image: img}
	nodeDefaults(n)
	if img != nil {
		b := img.Bounds()
		n.Width, n.Height = float64(b.Dx()), float64(b.Dy())
	}
	return n
}

// Image returns the image drawn by an image node, or nil.
func (n *Node) Image() *ebiten.Image {
	return n.image
}

// SetImage replaces the image drawn by an image node.
func (n *Node) SetImage(img *ebiten.Image) {
	n.image = img
}

// String returns the node's name and id, for diagnostics.
func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Name, n.ID)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grasp: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grasp: adding child would create a cycle")
	}
	if child.Parent == n {
		n.removeChildByPtr(child)
		if index > len(n.children) {
			index = len(n.children)
		}
	} else if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if index < 0 || index > len(n.children) {
		panic("grasp: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. Captures held by the detached
// subtree are released.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("grasp: child's parent is not this node")
	}
	if s := n.Scene(); s != nil {
		s.releaseSubtree(child)
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("grasp: child index out of range")
	}
	child := n.children[index]
	n.RemoveChild(child)
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
	s := n.Scene()
	for _, child := range n.children {
		if s != nil {
			s.releaseSubtree(child)
		}
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
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
		panic("grasp: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("grasp: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// Scene returns the scene this node is attached to, or nil.
func (n *Node) Scene() *Scene {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root.scene
}

// --- Visual capability ---

// Opacity returns the node's own alpha.
func (n *Node) Opacity() float64 {
	return n.Alpha
}

// SetOpacity sets the node's alpha and marks it dirty.
func (n *Node) SetOpacity(a float64) {
	n.SetAlpha(a)
}

// Size returns the node's local width and height.
func (n *Node) Size() Vec2 {
	return Vec2{n.Width, n.Height}
}

// SetSize sets the node's local width and height.
func (n *Node) SetSize(size Vec2) {
	n.Width = size.X
	n.Height = size.Y
}

// VisualAt returns the child at index as a Visual.
func (n *Node) VisualAt(index int) Visual {
	return n.children[index]
}

// --- Event capability ---

// SetEventHandler registers fn for events of type t arriving from any source
// bit in src, replacing earlier registrations for the same (t, source). A nil
// fn removes them.
func (n *Node) SetEventHandler(t EventType, src SourceMask, fn EventHandler) {
	if t >= numEventTypes {
		panic(fmt.Sprintf("grasp: invalid event type %d", t))
	}
	for i := 0; i < numSources; i++ {
		if src&(1<<i) != 0 {
			n.handlers[t][i] = fn
		}
	}
}

// handler returns the handler for (t, src), where src is a single source bit.
func (n *Node) handler(t EventType, src SourceMask) EventHandler {
	i := sourceIndex(src)
	if i < 0 || t >= numEventTypes {
		return nil
	}
	return n.handlers[t][i]
}

// SetEventCapture routes all later events of cursorID to this node until the
// capture is released. Capturing a cursor this node already holds is a no-op.
func (n *Node) SetEventCapture(cursorID int) error {
	s := n.Scene()
	if s == nil {
		return fmt.Errorf("capture cursor %d on %s: %w", cursorID, n, ErrDetached)
	}
	return s.capture(cursorID, n)
}

// ReleaseEventCapture ends this node's capture of cursorID.
func (n *Node) ReleaseEventCapture(cursorID int) error {
	s := n.Scene()
	if s == nil {
		return fmt.Errorf("release cursor %d on %s: %w", cursorID, n, ErrDetached)
	}
	return s.release(cursorID, n)
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
	n.HitShape = nil
	n.image = nil
	n.UserData = nil
	n.handlers = [numEventTypes][numSources]EventHandler{}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
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

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
