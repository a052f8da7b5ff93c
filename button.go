package grasp

import "fmt"

// ButtonMode is the visual state of a Button. Its value is the index of the
// child shown for the state.
type ButtonMode uint8

const (
	ButtonUp       ButtonMode = iota // idle
	ButtonDown                       // pressed, cursor inside
	ButtonOver                       // hovered
	ButtonDisabled                   // disabled

	numButtonModes = 4
)

func (m ButtonMode) String() string {
	switch m {
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonOver:
		return "over"
	case ButtonDisabled:
		return "disabled"
	}
	return fmt.Sprintf("ButtonMode(%d)", uint8(m))
}

// Button is a pressable widget. Its node must have at least four children,
// the visuals for ButtonUp, ButtonDown, ButtonOver and ButtonDisabled in that
// order; exactly one of them is opaque at any time.
//
// A click fires when a press that started on the button is released while
// the button still shows ButtonDown, so pressing, leaving and releasing
// outside does not click.
//
// Over and out are tracked for the mouse and for touch hover tracking only;
// a touch contact that slides off the button still clicks on release.
type Button struct {
	node    WidgetNode
	onClick func(*Button)
	id      any

	mode     ButtonMode
	disabled bool
	clicking bool
	closed   bool

	// The press being tracked: which device started it and which cursor the
	// button captured for it.
	pressSource SourceMask
	pressCursor int
	captured    bool
}

// NewButton creates a button on node. pointer is consulted once to pick the
// initial visual (ButtonOver when the pointer is already on the button) and
// may be nil. onClick may be nil; id is returned by ID.
// Panics if node has fewer than four children.
func NewButton(node WidgetNode, pointer PointerTracker, onClick func(*Button), id any) *Button {
	if node == nil {
		panic("grasp: button requires a node")
	}
	if node.NumChildren() < numButtonModes {
		panic(fmt.Sprintf("grasp: button node needs %d visual children, has %d", numButtonModes, node.NumChildren()))
	}
	b := &Button{node: node, onClick: onClick, id: id}
	node.SetSize(node.VisualAt(int(ButtonUp)).Size())
	if b.pointerOver(pointer) {
		b.setMode(ButtonOver)
	} else {
		b.setMode(ButtonUp)
	}
	node.SetEventHandler(EventCursorDown, SourcePointer, b.onDown)
	node.SetEventHandler(EventCursorUp, SourcePointer, b.onUp)
	node.SetEventHandler(EventCursorOver, SourceMouse|SourceTrack, b.onOver)
	node.SetEventHandler(EventCursorOut, SourceMouse|SourceTrack, b.onOut)
	node.SetEventHandler(EventCaptureLost, SourcePointer, b.onCaptureLost)
	return b
}

// pointerOver reports whether the pointer is strictly inside the node's box.
func (b *Button) pointerOver(pointer PointerTracker) bool {
	if pointer == nil {
		return false
	}
	pos, ok := pointer.PointerPosition()
	if !ok {
		return false
	}
	lx, ly := b.node.WorldToLocal(pos.X, pos.Y)
	size := b.node.Size()
	return lx > 0 && lx < size.X && ly > 0 && ly < size.Y
}

// ID returns the identifier given at construction.
func (b *Button) ID() any {
	return b.id
}

// Mode returns the visual state currently shown.
func (b *Button) Mode() ButtonMode {
	return b.mode
}

// Disabled reports whether the button is disabled.
func (b *Button) Disabled() bool {
	return b.disabled
}

// SetDisabled enables or disables the button. Disabling abandons a press in
// progress and releases its capture if one is held.
//
// Re-enabling always shows ButtonUp, even when the pointer is over the
// button; ButtonOver appears with the next over event.
func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.releaseCapture()
		b.clicking = false
		b.setMode(ButtonDisabled)
	} else {
		b.setMode(ButtonUp)
	}
}

// Close unregisters the button's handlers and releases any capture.
func (b *Button) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.releaseCapture()
	b.node.SetEventHandler(EventCursorDown, SourcePointer, nil)
	b.node.SetEventHandler(EventCursorUp, SourcePointer, nil)
	b.node.SetEventHandler(EventCursorOver, SourceMouse|SourceTrack, nil)
	b.node.SetEventHandler(EventCursorOut, SourceMouse|SourceTrack, nil)
	b.node.SetEventHandler(EventCaptureLost, SourcePointer, nil)
}

func (b *Button) onDown(e CursorEvent) {
	// One press at a time, so every capture pairs with exactly one release.
	if b.disabled || (b.clicking && b.captured) {
		return
	}
	if err := b.node.SetEventCapture(e.CursorID); err != nil {
		Logger().Debug("button press not captured", "cursor", e.CursorID, "err", err)
	} else {
		b.captured = true
	}
	b.pressSource = e.Source
	b.pressCursor = e.CursorID
	b.clicking = true
	b.setMode(ButtonDown)
}

func (b *Button) onUp(e CursorEvent) {
	if b.disabled || !b.clicking || e.Source != b.pressSource || e.CursorID != b.pressCursor {
		return
	}
	b.releaseCapture()
	if b.mode == ButtonDown {
		b.setMode(ButtonOver)
		if b.onClick != nil {
			b.onClick(b)
		}
	}
	b.clicking = false
}

// onCaptureLost abandons the press when the host drops its capture; the
// press's up will not arrive.
func (b *Button) onCaptureLost(e CursorEvent) {
	if !b.captured || e.CursorID != b.pressCursor {
		return
	}
	b.captured = false
	b.clicking = false
	if !b.disabled {
		b.setMode(ButtonUp)
	}
}

func (b *Button) onOver(CursorEvent) {
	if b.disabled {
		return
	}
	if b.clicking {
		b.setMode(ButtonDown)
	} else {
		b.setMode(ButtonOver)
	}
}

func (b *Button) onOut(CursorEvent) {
	if b.disabled {
		return
	}
	b.setMode(ButtonUp)
}

// releaseCapture drops the press capture, tolerating a host that already
// dropped it.
func (b *Button) releaseCapture() {
	if !b.captured {
		return
	}
	b.captured = false
	if err := b.node.ReleaseEventCapture(b.pressCursor); err != nil {
		Logger().Debug("button capture already gone", "cursor", b.pressCursor, "err", err)
	}
}

// setMode shows the visual for mode and hides the other three.
func (b *Button) setMode(mode ButtonMode) {
	b.mode = mode
	for i := 0; i < numButtonModes; i++ {
		if ButtonMode(i) == mode {
			b.node.VisualAt(i).SetOpacity(1)
		} else {
			b.node.VisualAt(i).SetOpacity(0)
		}
	}
}
