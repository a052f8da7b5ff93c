package grasp

import "time"

// fakeVisual is a Visual with plain fields.
type fakeVisual struct {
	opacity float64
	size    Vec2
}

func (v *fakeVisual) Opacity() float64     { return v.opacity }
func (v *fakeVisual) SetOpacity(a float64) { v.opacity = a }
func (v *fakeVisual) Size() Vec2           { return v.size }

// fakeNode is a WidgetNode outside any scene. Events are delivered by hand
// with fire, and captures are tracked per cursor so tests can check that
// every capture is released.
type fakeNode struct {
	fakeVisual
	origin   Vec2
	children []*fakeVisual
	handlers map[EventType][numSources]EventHandler

	captured    map[int]bool
	captures    int
	releases    int
	failCapture bool
}

func newFakeNode(children int, childSize Vec2) *fakeNode {
	n := &fakeNode{
		fakeVisual: fakeVisual{opacity: 1},
		handlers:   make(map[EventType][numSources]EventHandler),
		captured:   make(map[int]bool),
	}
	for i := 0; i < children; i++ {
		n.children = append(n.children, &fakeVisual{opacity: 1, size: childSize})
	}
	return n
}

func (n *fakeNode) SetEventHandler(t EventType, src SourceMask, fn EventHandler) {
	slots := n.handlers[t]
	for bit := SourceMouse; bit <= SourceTrack; bit <<= 1 {
		if src&bit != 0 {
			slots[sourceIndex(bit)] = fn
		}
	}
	n.handlers[t] = slots
}

func (n *fakeNode) SetEventCapture(cursorID int) error {
	if n.failCapture {
		return ErrCaptureHeld
	}
	if n.captured[cursorID] {
		return ErrCaptureHeld
	}
	n.captured[cursorID] = true
	n.captures++
	return nil
}

func (n *fakeNode) ReleaseEventCapture(cursorID int) error {
	if !n.captured[cursorID] {
		return ErrNoCapture
	}
	delete(n.captured, cursorID)
	n.releases++
	return nil
}

func (n *fakeNode) SetSize(size Vec2)         { n.size = size }
func (n *fakeNode) NumChildren() int          { return len(n.children) }
func (n *fakeNode) VisualAt(index int) Visual { return n.children[index] }
func (n *fakeNode) WorldToLocal(wx, wy float64) (float64, float64) {
	return wx - n.origin.X, wy - n.origin.Y
}

// hasHandler reports whether a handler is registered for t and src.
func (n *fakeNode) hasHandler(t EventType, src SourceMask) bool {
	return n.handlers[t][sourceIndex(src)] != nil
}

// fire delivers one event to the handler registered for its type and source.
func (n *fakeNode) fire(t EventType, src SourceMask, cursorID int, pos, speed Vec2) {
	fn := n.handlers[t][sourceIndex(src)]
	if fn == nil {
		return
	}
	fn(CursorEvent{Type: t, CursorID: cursorID, Pos: pos, Speed: speed, Source: src})
}

// loseCapture drops the capture of cursorID the way a host does when the
// node leaves the tree, and notifies the node.
func (n *fakeNode) loseCapture(cursorID int) {
	delete(n.captured, cursorID)
	n.fire(EventCaptureLost, SourceMouse, cursorID, Vec2{}, Vec2{})
}

func (n *fakeNode) down(cursorID int, pos Vec2) {
	n.fire(EventCursorDown, SourceMouse, cursorID, pos, Vec2{})
}

func (n *fakeNode) move(cursorID int, pos, speed Vec2) {
	n.fire(EventCursorMotion, SourceMouse, cursorID, pos, speed)
}

func (n *fakeNode) up(cursorID int, pos, speed Vec2) {
	n.fire(EventCursorUp, SourceMouse, cursorID, pos, speed)
}

// opacities returns the opacity of every child in order.
func (n *fakeNode) opacities() []float64 {
	out := make([]float64, len(n.children))
	for i, c := range n.children {
		out[i] = c.opacity
	}
	return out
}

// fakeScheduler is a FrameScheduler advanced by tick.
type fakeScheduler struct {
	now      time.Duration
	duration time.Duration
	nextID   FrameHandlerID
	ids      []FrameHandlerID
	fns      map[FrameHandlerID]func()
}

func newFakeScheduler(duration time.Duration) *fakeScheduler {
	return &fakeScheduler{duration: duration, fns: make(map[FrameHandlerID]func())}
}

func (s *fakeScheduler) SetOnFrameHandler(fn func()) FrameHandlerID {
	s.nextID++
	s.ids = append(s.ids, s.nextID)
	s.fns[s.nextID] = fn
	return s.nextID
}

func (s *fakeScheduler) ClearInterval(id FrameHandlerID) bool {
	if _, ok := s.fns[id]; !ok {
		return false
	}
	delete(s.fns, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true
}

func (s *fakeScheduler) FrameTime() time.Duration     { return s.now }
func (s *fakeScheduler) FrameDuration() time.Duration { return s.duration }

// tick advances the clock by one frame and runs the handlers registered
// before it started.
func (s *fakeScheduler) tick() {
	s.now += s.duration
	ids := append([]FrameHandlerID(nil), s.ids...)
	for _, id := range ids {
		if fn, ok := s.fns[id]; ok {
			fn()
		}
	}
}

func (s *fakeScheduler) ticks(n int) {
	for i := 0; i < n; i++ {
		s.tick()
	}
}

func (s *fakeScheduler) active() int {
	return len(s.fns)
}

// fakePointer is a PointerTracker at a fixed position.
type fakePointer struct {
	pos   Vec2
	known bool
}

func (p fakePointer) PointerPosition() (Vec2, bool) { return p.pos, p.known }
