package grasp

// ManipulationHooks are the per-gesture callbacks a ManipulationProcessor
// forwards owned cursor events to. Nil hooks are no-ops.
type ManipulationHooks struct {
	// Down runs after the processor has claimed the cursor and captured it.
	Down func(CursorEvent)
	// Move runs for motion of the owning cursor only.
	Move func(CursorEvent)
	// Up runs after the capture has been released and ownership cleared.
	Up func(CursorEvent)
	// Cancel runs when the processor is disabled mid-gesture or the host
	// drops its capture. Up is not called in either case.
	Cancel func()
}

// ManipulationProcessor turns a node's raw cursor events into a single-cursor
// gesture. The first cursor to go down claims the gesture and captures the
// node; every other cursor is ignored until the owner goes up.
type ManipulationProcessor struct {
	node    CaptureTarget
	source  SourceMask
	hooks   ManipulationHooks
	enabled bool
	closed  bool

	cursorID int
	active   bool
}

// NewManipulationProcessor binds a processor to node, listening for events
// from the given sources. The processor starts enabled. Panics if node is nil.
func NewManipulationProcessor(node CaptureTarget, source SourceMask, hooks ManipulationHooks) *ManipulationProcessor {
	if node == nil {
		panic("grasp: manipulation processor requires a node")
	}
	if source == 0 {
		source = SourcePointer
	}
	p := &ManipulationProcessor{node: node, source: source, hooks: hooks}
	p.Enable(true)
	return p
}

// Enable turns event handling on or off. Enabling an enabled processor (or
// disabling a disabled one) does nothing. Disabling mid-gesture releases the
// capture, clears ownership and runs the Cancel hook before returning.
func (p *ManipulationProcessor) Enable(enabled bool) {
	if p.closed || enabled == p.enabled {
		return
	}
	p.enabled = enabled
	if enabled {
		p.setEventHandlers(p.onDown, p.onMove, p.onUp, p.onCaptureLost)
		return
	}
	p.setEventHandlers(nil, nil, nil, nil)
	if p.active {
		p.abandon()
	}
}

// Enabled reports whether the processor is handling events.
func (p *ManipulationProcessor) Enabled() bool {
	return p.enabled
}

// ActiveCursor returns the cursor owning the current gesture, if any.
func (p *ManipulationProcessor) ActiveCursor() (int, bool) {
	return p.cursorID, p.active
}

// Close disables the processor for good and unregisters its handlers.
func (p *ManipulationProcessor) Close() {
	p.Enable(false)
	p.closed = true
}

func (p *ManipulationProcessor) setEventHandlers(down, move, up, lost EventHandler) {
	p.node.SetEventHandler(EventCursorDown, p.source, down)
	p.node.SetEventHandler(EventCursorMotion, p.source, move)
	p.node.SetEventHandler(EventCursorUp, p.source, up)
	p.node.SetEventHandler(EventCaptureLost, p.source, lost)
}

func (p *ManipulationProcessor) onDown(e CursorEvent) {
	if p.active {
		return
	}
	if err := p.node.SetEventCapture(e.CursorID); err != nil {
		Logger().Debug("gesture not claimed", "cursor", e.CursorID, "err", err)
		return
	}
	p.cursorID = e.CursorID
	p.active = true
	if p.hooks.Down != nil {
		p.hooks.Down(e)
	}
}

func (p *ManipulationProcessor) onMove(e CursorEvent) {
	if !p.active || e.CursorID != p.cursorID {
		return
	}
	if p.hooks.Move != nil {
		p.hooks.Move(e)
	}
}

func (p *ManipulationProcessor) onUp(e CursorEvent) {
	if !p.active || e.CursorID != p.cursorID {
		return
	}
	p.release()
	if p.hooks.Up != nil {
		p.hooks.Up(e)
	}
}

// onCaptureLost ends the gesture when the host has already dropped the
// capture, so the owner's up will never arrive.
func (p *ManipulationProcessor) onCaptureLost(e CursorEvent) {
	if !p.active || e.CursorID != p.cursorID {
		return
	}
	p.clearOwner()
	if p.hooks.Cancel != nil {
		p.hooks.Cancel()
	}
}

// abandon ends the current gesture without an up event.
func (p *ManipulationProcessor) abandon() {
	p.release()
	if p.hooks.Cancel != nil {
		p.hooks.Cancel()
	}
}

func (p *ManipulationProcessor) release() {
	// The host may already have dropped the capture (node detached); the
	// gesture ends either way.
	if err := p.node.ReleaseEventCapture(p.cursorID); err != nil {
		Logger().Debug("capture already gone", "cursor", p.cursorID, "err", err)
	}
	p.clearOwner()
}

func (p *ManipulationProcessor) clearOwner() {
	p.active = false
	p.cursorID = 0
}
