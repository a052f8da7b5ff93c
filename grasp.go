package grasp

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// WhitePixel is a 1x1 white image used to draw solid color rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Vec2 is a 2D vector used for positions, offsets, sizes and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes drawing behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid color rectangle of Width x Height
	NodeTypeImage                     // user-provided image scaled to Width x Height
)

// EventType identifies a kind of cursor event.
type EventType uint8

const (
	EventCursorDown   EventType = iota // a cursor made contact (button press or touch start)
	EventCursorMotion                  // a cursor moved
	EventCursorUp                      // a cursor lost contact
	EventCursorOver                    // a cursor entered a node's area
	EventCursorOut                     // a cursor left a node's area
	EventCaptureLost                   // the host dropped a node's capture before the cursor's up
	numEventTypes
)

var eventTypeNames = [numEventTypes]string{"down", "motion", "up", "over", "out", "lost"}

// String returns a short lowercase name for the event type.
func (t EventType) String() string {
	if t < numEventTypes {
		return eventTypeNames[t]
	}
	return "unknown"
}

// SourceMask is a bitmask of input device classes. Event handlers are
// registered for a mask; events carry exactly one source bit.
type SourceMask uint8

const (
	SourceMouse SourceMask = 1 << iota // mouse pointer
	SourceTouch                        // touch contact
	SourceTrack                        // hover tracking of a touch device

	// SourcePointer covers every device that can press: mouse and touch.
	SourcePointer = SourceMouse | SourceTouch

	numSources = 3
)

// String returns a short lowercase name for a single-bit source.
func (m SourceMask) String() string {
	switch m {
	case SourceMouse:
		return "mouse"
	case SourceTouch:
		return "touch"
	case SourceTrack:
		return "track"
	case SourcePointer:
		return "pointer"
	}
	return "mixed"
}

// sourceIndex returns the handler-table slot for a single source bit, or -1.
func sourceIndex(m SourceMask) int {
	switch m {
	case SourceMouse:
		return 0
	case SourceTouch:
		return 1
	case SourceTrack:
		return 2
	}
	return -1
}
