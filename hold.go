package grasp

import (
	"fmt"
	"time"
)

// defaultHoldMoveTolerance is how far, in world units, a held cursor may
// drift before the hold restarts from the new position.
const defaultHoldMoveTolerance = 5.0

// HoldState is the phase of a hold gesture.
type HoldState uint8

const (
	HoldUp      HoldState = iota // no contact
	HoldDown                     // contact, HoldDelay not yet reached
	HoldHolding                  // past HoldDelay, ramping toward ActivateDelay
	HoldActive                   // past ActivateDelay
)

func (s HoldState) String() string {
	switch s {
	case HoldUp:
		return "up"
	case HoldDown:
		return "down"
	case HoldHolding:
		return "holding"
	case HoldActive:
		return "active"
	}
	return fmt.Sprintf("HoldState(%d)", uint8(s))
}

// HoldOptions configures a HoldProcessor. Nil callbacks are no-ops.
type HoldOptions struct {
	// Source selects the devices the processor listens to. Zero means
	// SourcePointer.
	Source SourceMask

	// HoldDelay is the press time, measured from the press, after which the
	// hold starts.
	HoldDelay time.Duration
	// ActivateDelay is the press time, measured from the press, after which
	// the hold activates. Callers should keep it >= HoldDelay.
	ActivateDelay time.Duration
	// MoveTolerance is the drift that restarts the hold. Zero means 5.
	MoveTolerance float64

	// OnStart runs when the hold starts, with the press position.
	OnStart func(pos Vec2)
	// OnHold runs every frame between start and activation with the
	// progress toward activation in [0, 1].
	OnHold func(progress float64)
	// OnActivate runs once when ActivateDelay is reached.
	OnActivate func()
	// OnStop runs when a started hold ends: on release, on drift, or when
	// the processor is disabled. A press released before HoldDelay never
	// started, so it does not stop either.
	OnStop func()
}

// HoldProcessor detects long presses. A press moves through
// HoldDown -> HoldHolding -> HoldActive as time passes and back to HoldUp on
// release; drifting further than MoveTolerance restarts it at HoldDown.
type HoldProcessor struct {
	*ManipulationProcessor

	sched FrameScheduler
	opts  HoldOptions

	state     HoldState
	startPos  Vec2
	startTime time.Duration
	frameID   FrameHandlerID
}

// NewHoldProcessor creates a hold processor on node. Panics if node or sched
// is nil.
func NewHoldProcessor(node CaptureTarget, sched FrameScheduler, opts HoldOptions) *HoldProcessor {
	if sched == nil {
		panic("grasp: hold processor requires a frame scheduler")
	}
	if opts.MoveTolerance == 0 {
		opts.MoveTolerance = defaultHoldMoveTolerance
	}
	h := &HoldProcessor{sched: sched, opts: opts}
	h.ManipulationProcessor = NewManipulationProcessor(node, opts.Source, ManipulationHooks{
		Down:   h.handleDown,
		Move:   h.handleMove,
		Up:     h.handleUp,
		Cancel: h.handleCancel,
	})
	return h
}

// State returns the current hold state.
func (h *HoldProcessor) State() HoldState {
	return h.state
}

func (h *HoldProcessor) handleDown(e CursorEvent) {
	h.startPos = e.Pos
	h.startTime = h.sched.FrameTime()
	h.changeState(HoldDown)
	h.frameID = h.sched.SetOnFrameHandler(h.onFrame)
}

func (h *HoldProcessor) handleMove(e CursorEvent) {
	if e.Pos.Sub(h.startPos).Len() > h.opts.MoveTolerance {
		h.startPos = e.Pos
		h.startTime = h.sched.FrameTime()
		h.changeState(HoldDown)
	}
}

func (h *HoldProcessor) handleUp(CursorEvent) {
	h.end()
}

func (h *HoldProcessor) handleCancel() {
	h.end()
}

func (h *HoldProcessor) end() {
	if h.frameID != 0 {
		h.sched.ClearInterval(h.frameID)
		h.frameID = 0
	}
	h.changeState(HoldUp)
}

// onFrame advances the hold timing. Both delays are measured from the press
// (or from the last drift restart).
func (h *HoldProcessor) onFrame() {
	elapsed := h.sched.FrameTime() - h.startTime
	if h.state == HoldDown && elapsed > h.opts.HoldDelay {
		h.changeState(HoldHolding)
	}
	if h.state == HoldHolding {
		if elapsed > h.opts.ActivateDelay {
			h.changeState(HoldActive)
		} else if h.opts.OnHold != nil {
			h.opts.OnHold(h.progress(elapsed))
		}
	}
}

// progress maps elapsed press time onto [0, 1] between the two delays.
func (h *HoldProcessor) progress(elapsed time.Duration) float64 {
	span := h.opts.ActivateDelay - h.opts.HoldDelay
	if span <= 0 {
		return 1
	}
	p := float64(elapsed-h.opts.HoldDelay) / float64(span)
	return min(max(p, 0), 1)
}

// changeState performs a state transition and its side effect. Same-state
// transitions do nothing; transitions the gesture cannot produce panic.
func (h *HoldProcessor) changeState(next HoldState) {
	prev := h.state
	if prev == next {
		return
	}
	switch {
	case prev == HoldUp && next == HoldDown:
	case prev == HoldDown && next == HoldHolding:
		if h.opts.OnStart != nil {
			h.opts.OnStart(h.startPos)
		}
	case prev == HoldHolding && next == HoldActive:
		if h.opts.OnActivate != nil {
			h.opts.OnActivate()
		}
	case next == HoldUp:
		if prev != HoldDown {
			h.stopped()
		}
	case next == HoldDown:
		// Restart from holding or active.
		h.stopped()
	default:
		panic(fmt.Sprintf("grasp: invalid hold transition %s -> %s", prev, next))
	}
	Logger().Debug("hold state", "from", prev.String(), "to", next.String())
	h.state = next
}

func (h *HoldProcessor) stopped() {
	if h.opts.OnStop != nil {
		h.opts.OnStop()
	}
}
