package grasp

// Drag speed smoothing. Every move adds dragSpeedGain of the cursor speed to
// the accumulated speed, and every frame of the drag decays it by
// dragSpeedDecay, so holding still before release launches slowly.
const (
	dragSpeedGain  = 0.1
	dragSpeedDecay = 0.9
)

// DragOptions configures a DragProcessor. Nil callbacks are no-ops.
type DragOptions struct {
	// Source selects the devices the processor listens to. Zero means
	// SourcePointer.
	Source SourceMask

	// Inertia enables post-release coasting. A negative Friction disables it
	// as well.
	Inertia bool
	// Friction is the speed magnitude, in world units per second, removed on
	// every inertia frame. Deceleration is constant, so a run launched at
	// speed s stops after about s/Friction frames. With Inertia set, zero
	// Friction coasts at the release speed until AbortInertia, a new press or
	// Enable(false) ends the run.
	Friction float64

	// OnStart runs when a drag begins.
	OnStart func(e CursorEvent)
	// OnMove runs for every move of the dragging cursor and for every
	// inertia step. offset is measured from the drag start position in world
	// coordinates. e is nil for inertia steps, which have no physical contact.
	OnMove func(e *CursorEvent, offset Vec2)
	// OnUp runs when the dragging cursor is released.
	OnUp func(e CursorEvent, offset Vec2)
	// OnStop runs when the drag is completely over: on release without
	// inertia, when inertia runs out, or when inertia is aborted.
	OnStop func()
}

// DragProcessor is a drag gesture with optional inertia. Offsets are
// reported relative to where the drag started, in the world coordinate
// frame of the drag start even if the node moves or rescales mid-drag.
type DragProcessor struct {
	*ManipulationProcessor

	sched FrameScheduler
	opts  DragOptions

	startPos Vec2
	speed    Vec2
	offset   Vec2

	sampleID  FrameHandlerID
	inertiaID FrameHandlerID
}

// NewDragProcessor creates a drag processor on node. sched drives speed
// sampling and inertia. Panics if node or sched is nil.
func NewDragProcessor(node CaptureTarget, sched FrameScheduler, opts DragOptions) *DragProcessor {
	if sched == nil {
		panic("grasp: drag processor requires a frame scheduler")
	}
	d := &DragProcessor{sched: sched, opts: opts}
	d.ManipulationProcessor = NewManipulationProcessor(node, opts.Source, ManipulationHooks{
		Down:   d.handleDown,
		Move:   d.handleMove,
		Up:     d.handleUp,
		Cancel: d.handleCancel,
	})
	return d
}

// Enable turns the processor on or off. Disabling also aborts a running
// inertia run.
func (d *DragProcessor) Enable(enabled bool) {
	d.ManipulationProcessor.Enable(enabled)
	if !enabled {
		d.AbortInertia()
	}
}

// Close disables the processor for good, aborting any inertia run.
func (d *DragProcessor) Close() {
	d.ManipulationProcessor.Close()
	d.AbortInertia()
}

// InertiaActive reports whether an inertia run is in progress.
func (d *DragProcessor) InertiaActive() bool {
	return d.inertiaID != 0
}

// Speed returns the current smoothed drag speed, or the inertia speed during
// an inertia run.
func (d *DragProcessor) Speed() Vec2 {
	return d.speed
}

// AbortInertia stops a running inertia run immediately, without further
// movement. OnStop runs once. No-op if no run is active.
func (d *DragProcessor) AbortInertia() {
	if d.inertiaID != 0 {
		d.stop()
	}
}

func (d *DragProcessor) inertiaEnabled() bool {
	return d.opts.Inertia && d.opts.Friction >= 0
}

func (d *DragProcessor) handleDown(e CursorEvent) {
	if d.inertiaID != 0 {
		d.stop()
	}
	d.startPos = e.Pos
	if d.opts.OnStart != nil {
		d.opts.OnStart(e)
	}
	d.speed = Vec2{}
	d.sampleID = d.sched.SetOnFrameHandler(d.sample)
}

func (d *DragProcessor) handleMove(e CursorEvent) {
	offset := e.Pos.Sub(d.startPos)
	if d.opts.OnMove != nil {
		d.opts.OnMove(&e, offset)
	}
	d.speed = d.speed.Add(e.Speed.Scale(dragSpeedGain))
}

// sample decays the drag speed once per frame while the cursor is down.
func (d *DragProcessor) sample() {
	d.speed = d.speed.Scale(dragSpeedDecay)
}

func (d *DragProcessor) handleUp(e CursorEvent) {
	offset := e.Pos.Sub(d.startPos)
	if d.opts.OnUp != nil {
		d.opts.OnUp(e, offset)
	}
	d.stopSampling()
	if !d.inertiaEnabled() {
		if d.opts.OnStop != nil {
			d.opts.OnStop()
		}
		return
	}
	d.speed = d.speed.Add(e.Speed.Scale(dragSpeedGain))
	d.offset = offset
	d.inertiaID = d.sched.SetOnFrameHandler(d.stepInertia)
	Logger().Debug("inertia started", "speed", d.speed.Len(), "friction", d.opts.Friction)
}

// handleCancel ends everything when the processor is disabled mid-drag.
func (d *DragProcessor) handleCancel() {
	d.stopSampling()
	d.stop()
}

// stepInertia advances one inertia frame: the speed magnitude drops by
// Friction in the same direction and the offset advances by one frame of
// travel. The run stops once the magnitude would reach zero.
func (d *DragProcessor) stepInertia() {
	norm := d.speed.Len()
	if norm-d.opts.Friction <= 0 {
		d.stop()
		return
	}
	d.speed = d.speed.Normalized().Scale(norm - d.opts.Friction)
	d.offset = d.offset.Add(d.speed.Scale(d.sched.FrameDuration().Seconds()))
	if d.opts.OnMove != nil {
		d.opts.OnMove(nil, d.offset)
	}
}

func (d *DragProcessor) stopSampling() {
	if d.sampleID != 0 {
		d.sched.ClearInterval(d.sampleID)
		d.sampleID = 0
	}
}

// stop ends an inertia run (or a drag being cancelled) and reports it.
func (d *DragProcessor) stop() {
	d.speed = Vec2{}
	if d.inertiaID != 0 {
		d.sched.ClearInterval(d.inertiaID)
		d.inertiaID = 0
	}
	if d.opts.OnStop != nil {
		d.opts.OnStop()
	}
}
