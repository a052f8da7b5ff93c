package grasp

// syntheticCursorEvent represents a single injected cursor sample.
// Coordinates are world coordinates.
type syntheticCursorEvent struct {
	cursorID int
	source   SourceMask
	pos      Vec2
	pressed  bool
	end      bool // the contact ceases to exist after this sample (touch lift)
}

// InjectPress queues a mouse press at (x, y). Queued events are consumed one
// per frame on the next Update, ahead of host input.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(mouseCursorID, SourceMouse, x, y, true, false)
}

// InjectMove queues a mouse move to (x, y) with the button held down. Use
// this between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(mouseCursorID, SourceMouse, x, y, true, false)
}

// InjectHover queues a mouse move to (x, y) with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.inject(mouseCursorID, SourceMouse, x, y, false, false)
}

// InjectRelease queues a mouse release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(mouseCursorID, SourceMouse, x, y, false, false)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same position. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The sequence consumes `frames` frames; minimum is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectTouchDown queues the start of touch contact cursorID at (x, y).
// Touch cursor ids must not be 0, which belongs to the mouse.
func (s *Scene) InjectTouchDown(cursorID int, x, y float64) {
	s.injectTouch(cursorID, x, y, true, false)
}

// InjectTouchMove queues a move of touch contact cursorID to (x, y).
func (s *Scene) InjectTouchMove(cursorID int, x, y float64) {
	s.injectTouch(cursorID, x, y, true, false)
}

// InjectTouchUp queues the end of touch contact cursorID at (x, y). The
// contact is forgotten afterwards.
func (s *Scene) InjectTouchUp(cursorID int, x, y float64) {
	s.injectTouch(cursorID, x, y, false, true)
}

func (s *Scene) injectTouch(cursorID int, x, y float64, pressed, end bool) {
	if cursorID == mouseCursorID {
		panic("grasp: touch cursor id 0 is reserved for the mouse")
	}
	if cursorID > s.nextCursorID {
		s.nextCursorID = cursorID
	}
	s.inject(cursorID, SourceTouch, x, y, pressed, end)
}

func (s *Scene) inject(cursorID int, source SourceMask, x, y float64, pressed, end bool) {
	s.injectQueue = append(s.injectQueue, syntheticCursorEvent{
		cursorID: cursorID,
		source:   source,
		pos:      Vec2{x, y},
		pressed:  pressed,
		end:      end,
	})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processCursor. Returns true if an event was consumed (host input
// should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processCursor(evt.cursorID, evt.source, evt.pos, evt.pressed)
	if evt.end {
		s.endCursor(evt.cursorID)
	}
	return true
}
