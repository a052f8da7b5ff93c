package grasp

import (
	"errors"
	"time"
)

// CursorEvent is one cursor event as delivered to node handlers. Events are
// values; handlers receive a copy and never mutate the source's state.
type CursorEvent struct {
	Type EventType
	// CursorID identifies one physical contact for its down -> up lifetime.
	// The mouse is always cursor 0; touch contacts get fresh ids.
	CursorID int
	// Pos is the cursor position in world coordinates.
	Pos Vec2
	// Speed is the cursor velocity estimate in world units per second.
	Speed  Vec2
	Source SourceMask
	// Node is the node the event was routed to (the hit node or the
	// capturing node). Nil for events synthesized outside a scene.
	Node *Node
}

// EventHandler receives cursor events registered with SetEventHandler.
type EventHandler func(CursorEvent)

// Capture errors. They describe expected races, not programming errors;
// callers that only need best-effort release may ignore them.
var (
	ErrDetached    = errors.New("grasp: node is not attached to a scene")
	ErrCaptureHeld = errors.New("grasp: cursor is captured by another node")
	ErrNoCapture   = errors.New("grasp: cursor is not captured by this node")
)

// CaptureTarget is the event capability a gesture processor needs from a
// node: per-event-type handler registration and exclusive per-cursor capture.
type CaptureTarget interface {
	// SetEventHandler registers fn for events of type t from every source bit
	// in src. A nil fn removes the registration.
	SetEventHandler(t EventType, src SourceMask, fn EventHandler)
	// SetEventCapture routes every later event of cursorID to this node. If
	// the host has to drop the capture before the cursor's up (the node left
	// the tree), it delivers EventCaptureLost for cursorID instead.
	SetEventCapture(cursorID int) error
	// ReleaseEventCapture ends a capture taken with SetEventCapture.
	ReleaseEventCapture(cursorID int) error
}

// Visual is a node whose opacity and size can be inspected and changed.
type Visual interface {
	Opacity() float64
	SetOpacity(a float64)
	Size() Vec2
}

// WidgetNode is everything a Button and its toggles need from their node: a
// capture target that is itself visual, with indexed visual children.
type WidgetNode interface {
	CaptureTarget
	Visual
	SetSize(size Vec2)
	NumChildren() int
	VisualAt(index int) Visual
	WorldToLocal(wx, wy float64) (lx, ly float64)
}

// FrameHandlerID identifies a callback registered with SetOnFrameHandler.
// The zero value is never a valid id.
type FrameHandlerID uint32

// FrameScheduler runs callbacks once per frame. A registered callback is
// the only way gesture state persists across frames.
type FrameScheduler interface {
	// SetOnFrameHandler registers fn to run once every frame until cleared.
	SetOnFrameHandler(fn func()) FrameHandlerID
	// ClearInterval removes a frame handler. It reports whether id was
	// registered.
	ClearInterval(id FrameHandlerID) bool
	// FrameTime is the timestamp of the current frame, measured from an
	// arbitrary origin.
	FrameTime() time.Duration
	// FrameDuration is the nominal time between frames.
	FrameDuration() time.Duration
}

// PointerTracker reports where the hover-capable pointer currently is.
type PointerTracker interface {
	// PointerPosition returns the pointer position in world coordinates and
	// whether the position is known.
	PointerPosition() (Vec2, bool)
}
