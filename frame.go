package grasp

import "time"

// frameRegistry holds per-frame callbacks in registration order.
type frameRegistry struct {
	fns    map[FrameHandlerID]func()
	order  []FrameHandlerID
	buf    []FrameHandlerID
	nextID FrameHandlerID
}

// SetOnFrameHandler registers fn to run once per frame, after input has been
// processed. A handler registered while frame handlers are running first runs
// on the next frame. Panics if fn is nil.
func (s *Scene) SetOnFrameHandler(fn func()) FrameHandlerID {
	if fn == nil {
		panic("grasp: nil frame handler")
	}
	r := &s.frames
	if r.fns == nil {
		r.fns = make(map[FrameHandlerID]func())
	}
	r.nextID++
	id := r.nextID
	r.fns[id] = fn
	r.order = append(r.order, id)
	return id
}

// ClearInterval removes the frame handler with the given id. A cleared
// handler never runs again, even if it was cleared by another handler during
// the current frame. Reports whether id was registered.
func (s *Scene) ClearInterval(id FrameHandlerID) bool {
	r := &s.frames
	if _, ok := r.fns[id]; !ok {
		return false
	}
	delete(r.fns, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// NumFrameHandlers returns the number of registered frame handlers.
func (s *Scene) NumFrameHandlers() int {
	return len(s.frames.fns)
}

// FrameTime returns the timestamp of the current frame, measured from scene
// creation. It advances by FrameDuration on every Update.
func (s *Scene) FrameTime() time.Duration {
	return s.frameTime
}

// FrameDuration returns the nominal time between frames.
func (s *Scene) FrameDuration() time.Duration {
	return s.frameDuration
}

// SetFrameDuration sets the time the frame clock advances per Update.
// Run sets it from the tick rate; headless users set it directly.
func (s *Scene) SetFrameDuration(d time.Duration) {
	if d <= 0 {
		panic("grasp: frame duration must be positive")
	}
	s.frameDuration = d
}

// runFrameHandlers runs every handler registered before this call.
func (s *Scene) runFrameHandlers() {
	r := &s.frames
	r.buf = append(r.buf[:0], r.order...)
	for _, id := range r.buf {
		if fn, ok := r.fns[id]; ok {
			fn()
		}
	}
}
