package grasp

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// mouseCursorID is the cursor id of the mouse pointer. Touch contacts are
// numbered from 1 and never reuse an id within a scene's lifetime.
const mouseCursorID = 0

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Per-cursor state ---

type cursorState struct {
	id     int
	source SourceMask
	down   bool
	seen   bool // pos holds a real sample
	pos    Vec2
	speed  Vec2
	hover  []*Node // nodes under the cursor, deepest first
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's (0,0)-(Width,Height) box.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type == NodeTypeContainer || (n.Width == 0 && n.Height == 0) {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS), appending
// hit-testable nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at p (world coordinates).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(p Vec2) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(p.X, p.Y)
		if nodeContainsLocal(n, lx, ly) {
			clear(s.hitBuf)
			return n
		}
	}
	clear(s.hitBuf)
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update to feed one frame of input through
// the cursor state machines. An injected event, when queued, replaces host
// input for the frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.hostInput {
		return
	}
	s.processMouse()
	s.processTouches()
}

// processMouse polls the mouse (cursor 0).
func (s *Scene) processMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processCursor(mouseCursorID, SourceMouse, Vec2{float64(mx), float64(my)}, pressed)
}

// processTouches polls touch contacts. A contact that disappeared since the
// last frame is released at its last position.
func (s *Scene) processTouches() {
	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	active := make(map[ebiten.TouchID]bool, len(s.touchBuf))
	for _, tid := range s.touchBuf {
		active[tid] = true
		id, ok := s.touchCursors[tid]
		if !ok {
			id = s.newCursorID()
			s.touchCursors[tid] = id
		}
		tx, ty := ebiten.TouchPosition(tid)
		s.processCursor(id, SourceTouch, Vec2{float64(tx), float64(ty)}, true)
	}
	for tid, id := range s.touchCursors {
		if active[tid] {
			continue
		}
		if cs := s.cursors[id]; cs != nil {
			s.processCursor(id, SourceTouch, cs.pos, false)
		}
		s.endCursor(id)
		delete(s.touchCursors, tid)
	}
}

// newCursorID allocates a cursor id for a new touch contact.
func (s *Scene) newCursorID() int {
	s.nextCursorID++
	return s.nextCursorID
}

// processCursor runs the cursor state machine for one cursor sample.
func (s *Scene) processCursor(id int, source SourceMask, pos Vec2, pressed bool) {
	cs := s.cursors[id]
	if cs == nil {
		cs = &cursorState{id: id, source: source}
		s.cursors[id] = cs
	}
	moved := !cs.seen || pos != cs.pos
	if cs.seen && s.frameDuration > 0 {
		cs.speed = pos.Sub(cs.pos).Scale(1 / s.frameDuration.Seconds())
	} else {
		cs.speed = Vec2{}
	}
	cs.pos = pos
	cs.seen = true
	cs.source = source

	s.updateHover(cs)

	switch {
	case pressed && !cs.down:
		cs.down = true
		s.dispatch(EventCursorDown, cs)
	case pressed && cs.down:
		if moved {
			s.dispatch(EventCursorMotion, cs)
		}
	case !pressed && cs.down:
		cs.down = false
		s.dispatch(EventCursorUp, cs)
		// Auto-release a capture the owner forgot to release.
		if n := s.captured[id]; n != nil {
			delete(s.captured, id)
			if s.debug {
				Logger().Warn("capture not released on cursor up", "cursor", id, "node", n.String())
			}
		}
	default:
		if moved {
			s.dispatch(EventCursorMotion, cs)
		}
	}
}

// endCursor forgets a cursor whose contact no longer exists, sending out
// events to everything it was hovering.
func (s *Scene) endCursor(id int) {
	cs := s.cursors[id]
	if cs == nil {
		return
	}
	for _, n := range cs.hover {
		s.deliver(EventCursorOut, cs, n)
	}
	delete(s.cursors, id)
	delete(s.captured, id)
}

// dispatch routes a down, motion or up event to the capturing node or the
// hit node, then bubbles it through the target's ancestors.
func (s *Scene) dispatch(t EventType, cs *cursorState) {
	target := s.captured[cs.id]
	if target == nil {
		target = s.hitTest(cs.pos)
	}
	if target == nil {
		return
	}
	ev := CursorEvent{
		Type:     t,
		CursorID: cs.id,
		Pos:      cs.pos,
		Speed:    cs.speed,
		Source:   cs.source,
		Node:     target,
	}
	s.emitInteractionEvent(ev, target)
	for n := target; n != nil; n = n.Parent {
		if h := n.handler(t, cs.source); h != nil {
			h(ev)
		}
	}
}

// deliver sends an over or out event to a single node. These do not bubble.
func (s *Scene) deliver(t EventType, cs *cursorState, n *Node) {
	if n.disposed {
		return
	}
	ev := CursorEvent{
		Type:     t,
		CursorID: cs.id,
		Pos:      cs.pos,
		Speed:    cs.speed,
		Source:   cs.source,
		Node:     n,
	}
	s.emitInteractionEvent(ev, n)
	if h := n.handler(t, cs.source); h != nil {
		h(ev)
	}
}

// updateHover recomputes the nodes under the cursor and fires out events on
// the nodes it left (deepest first) and over events on the nodes it entered
// (outermost first). While the cursor is captured only the capturing node and
// its ancestors can be hovered.
func (s *Scene) updateHover(cs *cursorState) {
	hit := s.hitTest(cs.pos)
	if c := s.captured[cs.id]; c != nil {
		if hit != nil && isAncestor(c, hit) {
			hit = c
		} else {
			hit = nil
		}
	}

	var next []*Node
	for n := hit; n != nil; n = n.Parent {
		next = append(next, n)
	}

	prev := cs.hover
	cs.hover = next
	for _, n := range prev {
		if !containsNode(next, n) {
			s.deliver(EventCursorOut, cs, n)
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		if !containsNode(prev, next[i]) {
			s.deliver(EventCursorOver, cs, next[i])
		}
	}
}

func containsNode(nodes []*Node, n *Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}
