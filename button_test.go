package grasp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buttonChildSize = Vec2{X: 40, Y: 20}

func newButtonFixture(t *testing.T, pointer PointerTracker) (*fakeNode, *Button, *int) {
	t.Helper()
	node := newFakeNode(numButtonModes, buttonChildSize)
	node.origin = Vec2{X: 100, Y: 100}
	clicks := 0
	b := NewButton(node, pointer, func(*Button) { clicks++ }, "ok")
	return node, b, &clicks
}

// assertShows checks that exactly the visual for mode is opaque.
func assertShows(t *testing.T, node *fakeNode, mode ButtonMode) {
	t.Helper()
	want := make([]float64, numButtonModes)
	want[mode] = 1
	assert.Equal(t, want, node.opacities()[:numButtonModes], "showing %s", mode)
}

func fireMouse(node *fakeNode, et EventType, cursorID int) {
	node.fire(et, SourceMouse, cursorID, Vec2{}, Vec2{})
}

func TestButtonInitialState(t *testing.T) {
	tests := []struct {
		name    string
		pointer PointerTracker
		want    ButtonMode
	}{
		{"no pointer", nil, ButtonUp},
		{"unknown position", fakePointer{pos: Vec2{X: 110, Y: 110}}, ButtonUp},
		{"pointer inside", fakePointer{pos: Vec2{X: 110, Y: 110}, known: true}, ButtonOver},
		{"pointer on edge", fakePointer{pos: Vec2{X: 100, Y: 100}, known: true}, ButtonUp},
		{"pointer outside", fakePointer{pos: Vec2{X: 150, Y: 110}, known: true}, ButtonUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, b, _ := newButtonFixture(t, tt.pointer)
			assert.Equal(t, tt.want, b.Mode())
			assertShows(t, node, tt.want)
		})
	}
}

func TestButtonTakesSizeFromUpVisual(t *testing.T) {
	node, b, _ := newButtonFixture(t, nil)
	assert.Equal(t, buttonChildSize, node.Size())
	assert.Equal(t, "ok", b.ID())
}

func TestButtonRegistersHandlers(t *testing.T) {
	node, _, _ := newButtonFixture(t, nil)
	assert.True(t, node.hasHandler(EventCursorDown, SourceTouch))
	assert.True(t, node.hasHandler(EventCursorUp, SourceMouse))
	assert.True(t, node.hasHandler(EventCursorOver, SourceTrack))
	assert.False(t, node.hasHandler(EventCursorOver, SourceTouch), "touch contacts do not hover")
	assert.False(t, node.hasHandler(EventCursorOut, SourceTouch))
}

func TestButtonClick(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorOver, 0)
	assert.Equal(t, ButtonOver, b.Mode())

	fireMouse(node, EventCursorDown, 0)
	assert.Equal(t, ButtonDown, b.Mode())
	assertShows(t, node, ButtonDown)
	assert.True(t, node.captured[0])

	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
	assert.Equal(t, ButtonOver, b.Mode())
	assert.Empty(t, node.captured)
}

func TestButtonPressLeaveRelease(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorOver, 0)
	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorOut, 0)
	assert.Equal(t, ButtonUp, b.Mode())

	fireMouse(node, EventCursorUp, 0)
	assert.Zero(t, *clicks)
	assert.Equal(t, ButtonUp, b.Mode())
	assert.Empty(t, node.captured, "the capture is released without a click")
}

func TestButtonPressLeaveReturnRelease(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorOut, 0)
	fireMouse(node, EventCursorOver, 0)
	assert.Equal(t, ButtonDown, b.Mode(), "returning while pressed shows down again")

	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
}

func TestButtonOnePressAtATime(t *testing.T) {
	node, _, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorDown, 0)
	node.fire(EventCursorDown, SourceTouch, 5, Vec2{}, Vec2{})
	assert.Equal(t, 1, node.captures, "a second press is ignored")

	node.fire(EventCursorUp, SourceTouch, 5, Vec2{}, Vec2{})
	assert.Zero(t, *clicks, "the up of an ignored press does nothing")
	assert.True(t, node.captured[0])

	fireMouse(node, EventCursorUp, 1)
	assert.Zero(t, *clicks, "an up from another cursor does nothing")

	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
	assert.Equal(t, node.captures, node.releases)
}

func TestButtonFailedCaptureStillClicks(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)
	node.failCapture = true

	fireMouse(node, EventCursorDown, 0)
	assert.Equal(t, ButtonDown, b.Mode())
	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
	assert.Zero(t, node.releases)

	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 2, *clicks)
}

func TestButtonDisable(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorDown, 0)
	b.SetDisabled(true)
	assert.True(t, b.Disabled())
	assertShows(t, node, ButtonDisabled)
	assert.Empty(t, node.captured, "disabling releases the press capture")

	fireMouse(node, EventCursorUp, 0)
	fireMouse(node, EventCursorOver, 0)
	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorUp, 0)
	assert.Zero(t, *clicks)
	assert.Equal(t, ButtonDisabled, b.Mode())

	// Re-enabling shows up even though the pointer is still over the button.
	b.SetDisabled(false)
	assert.Equal(t, ButtonUp, b.Mode())
	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
}

func TestButtonClose(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorDown, 0)
	b.Close()
	b.Close()
	assert.Empty(t, node.captured)
	for _, et := range []EventType{EventCursorDown, EventCursorUp, EventCursorOver, EventCursorOut, EventCaptureLost} {
		assert.False(t, node.hasHandler(et, SourceMouse), "%s handler left behind", et)
	}
	fireMouse(node, EventCursorUp, 0)
	assert.Zero(t, *clicks)
}

func TestButtonNilClick(t *testing.T) {
	node := newFakeNode(numButtonModes, buttonChildSize)
	NewButton(node, nil, nil, nil)
	assert.NotPanics(t, func() {
		fireMouse(node, EventCursorDown, 0)
		fireMouse(node, EventCursorUp, 0)
	})
}

func TestButtonConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { NewButton(nil, nil, nil, nil) })
	assert.Panics(t, func() { NewButton(newFakeNode(3, buttonChildSize), nil, nil, nil) })
}

func TestButtonModeString(t *testing.T) {
	assert.Equal(t, "up", ButtonUp.String())
	assert.Equal(t, "down", ButtonDown.String())
	assert.Equal(t, "over", ButtonOver.String())
	assert.Equal(t, "disabled", ButtonDisabled.String())
	assert.Equal(t, "ButtonMode(7)", ButtonMode(7).String())
}

// newButtonNode builds a container at (x, y) with one 40x20 rect per button
// mode, plus extra rects for toggle visuals.
func newButtonNode(name string, x, y float64, visuals int) *Node {
	n := NewContainer(name)
	n.X, n.Y = x, y
	for i := 0; i < visuals; i++ {
		n.AddChild(NewRect(name+"-visual", buttonChildSize.X, buttonChildSize.Y, ColorWhite))
	}
	return n
}

func TestButtonInScene(t *testing.T) {
	s := newTestScene()
	node := newButtonNode("btn", 100, 100, numButtonModes)
	s.Root().AddChild(node)

	var clicked []any
	b := NewButton(node, s, func(b *Button) { clicked = append(clicked, b.ID()) }, 42)
	require.Equal(t, ButtonUp, b.Mode())

	s.InjectClick(110, 110)
	s.Update()
	assert.Equal(t, ButtonDown, b.Mode())
	assert.Equal(t, 1.0, node.ChildAt(int(ButtonDown)).Alpha)
	assert.Equal(t, 0.0, node.ChildAt(int(ButtonUp)).Alpha)
	s.Update()
	assert.Equal(t, []any{42}, clicked)
	assert.Nil(t, s.CapturedBy(mouseCursorID))

	// Press, drag off and release outside.
	s.InjectDrag(110, 110, 300, 300, 3)
	for i := 0; i < 3; i++ {
		s.Update()
	}
	assert.Len(t, clicked, 1)
	assert.Equal(t, ButtonUp, b.Mode())
	assert.Nil(t, s.CapturedBy(mouseCursorID))
}

func TestButtonStartsOverWhenPointerInside(t *testing.T) {
	s := newTestScene()
	s.InjectHover(110, 110)
	s.Update()

	node := newButtonNode("btn", 100, 100, numButtonModes)
	s.Root().AddChild(node)
	b := NewButton(node, s, nil, nil)
	assert.Equal(t, ButtonOver, b.Mode())
}

func TestButtonCaptureLost(t *testing.T) {
	node, b, clicks := newButtonFixture(t, nil)

	fireMouse(node, EventCursorDown, 0)
	node.loseCapture(3)
	assert.Equal(t, ButtonDown, b.Mode(), "another cursor's loss is ignored")

	node.loseCapture(0)
	assert.Equal(t, ButtonUp, b.Mode())
	fireMouse(node, EventCursorUp, 0)
	assert.Zero(t, *clicks, "the abandoned press does not click")

	fireMouse(node, EventCursorDown, 0)
	fireMouse(node, EventCursorUp, 0)
	assert.Equal(t, 1, *clicks)
}

func TestButtonSurvivesDetachMidPress(t *testing.T) {
	s := newTestScene()
	node := newButtonNode("btn", 100, 100, numButtonModes)
	s.Root().AddChild(node)
	clicks := 0
	b := NewButton(node, s, func(*Button) { clicks++ }, nil)

	s.InjectTouchDown(4, 110, 110)
	s.Update()
	require.Equal(t, ButtonDown, b.Mode())

	node.RemoveFromParent()
	assert.Equal(t, ButtonUp, b.Mode())
	s.InjectTouchUp(4, 110, 110)
	s.Update()

	s.Root().AddChild(node)
	s.InjectTouchDown(9, 110, 110)
	s.InjectTouchUp(9, 110, 110)
	s.Update()
	s.Update()
	assert.Equal(t, 1, clicks)
	assert.Nil(t, s.CapturedBy(9))
}
